package ds

import "time"

// ExportFormat - формат выгрузки таблицы
type ExportFormat string

const (
	ExportExcel ExportFormat = "excel"
	ExportPDF   ExportFormat = "pdf"
)

// Extension возвращает расширение файла выгрузки
func (f ExportFormat) Extension() string {
	switch f {
	case ExportExcel:
		return "xlsx"
	case ExportPDF:
		return "pdf"
	}
	return ""
}

// MediaType - значение заголовка Accept для формата
func (f ExportFormat) MediaType() string {
	switch f {
	case ExportExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportPDF:
		return "application/pdf"
	}
	return ""
}

// Download - файл, полученный от сервера и готовый к сохранению
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ExportRecord - запись об архивированной выгрузке
type ExportRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserKey     string    `gorm:"type:varchar(64) not null;index:idx_export_records_user" json:"user_key"`
	Endpoint    string    `gorm:"type:varchar(255) not null" json:"endpoint"`
	Format      string    `gorm:"type:varchar(16) not null" json:"format"`
	FileName    string    `gorm:"type:varchar(255) not null" json:"file_name"`
	ObjectKey   string    `gorm:"type:varchar(255)" json:"object_key"`
	ContentType string    `gorm:"type:varchar(128)" json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
