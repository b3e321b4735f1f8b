package ds

// Language - описание поддерживаемого языка интерфейса
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

// LanguageUpdate - тело PUT /user/language
type LanguageUpdate struct {
	Language string `json:"language"`
}
