package ds

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// User - данные пользователя из сессии провайдера аутентификации
type User struct {
	ID                any    `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	Role              string `json:"role,omitempty"`
	Language          string `json:"language,omitempty"`
	Locale            string `json:"locale,omitempty"`
	Lang              string `json:"lang,omitempty"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// StoredLanguage возвращает первый непустой язык из профиля
func (u User) StoredLanguage() (string, bool) {
	for _, code := range []string{u.Language, u.Locale, u.Lang, u.PreferredLanguage} {
		if code != "" {
			return code, true
		}
	}
	return "", false
}

// Key - ключ пользователя для хранилищ консоли. Пустой, если нет ни id, ни email.
func (u User) Key() string {
	var key string
	switch id := u.ID.(type) {
	case nil:
	case float64:
		key = strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		key = id.String()
	case string:
		key = id
	default:
		key = fmt.Sprint(id)
	}
	if key != "" {
		return key
	}
	return u.Email
}

// Permission - право доступа. Сервер отдает либо строку, либо объект с permission_slug.
type Permission struct {
	Slug string
}

func (p *Permission) UnmarshalJSON(data []byte) error {
	var slug string
	if err := json.Unmarshal(data, &slug); err == nil {
		p.Slug = slug
		return nil
	}

	var obj struct {
		PermissionSlug string `json:"permission_slug"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("permission: %w", err)
	}
	p.Slug = obj.PermissionSlug
	return nil
}

func (p Permission) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Slug)
}

// SessionData - ответ /auth/info
type SessionData struct {
	User        User         `json:"user"`
	Permissions []Permission `json:"permissions"`
}

// Clone возвращает независимую копию
func (d *SessionData) Clone() *SessionData {
	if d == nil {
		return nil
	}
	out := &SessionData{User: d.User}
	if d.Permissions != nil {
		out.Permissions = make([]Permission, len(d.Permissions))
		copy(out.Permissions, d.Permissions)
	}
	return out
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
