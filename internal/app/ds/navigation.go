// internal/app/ds/navigation.go
package ds

import (
	"time"

	"gorm.io/gorm"
)

// ViewNavigation - запись истории адресной строки представления (page, length, filter)
type ViewNavigation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserKey   string    `gorm:"type:varchar(64) not null;index:idx_view_navigations_user_view"`
	View      string    `gorm:"type:varchar(255) not null;index:idx_view_navigations_user_view"`
	Query     string    `gorm:"type:text not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// CreateConsoleIndexes создает составные индексы для частых запросов консоли
func CreateConsoleIndexes(db *gorm.DB) error {
	indexes := []string{
		// Последняя навигация пользователя по представлению
		`CREATE INDEX IF NOT EXISTS idx_view_navigations_latest
		 ON view_navigations (user_key, view, id DESC)`,

		// История выгрузок с пагинацией
		`CREATE INDEX IF NOT EXISTS idx_export_records_pagination
		 ON export_records (user_key, id DESC)`,
	}

	for _, sql := range indexes {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}

	db.Exec("ANALYZE view_navigations")
	db.Exec("ANALYZE export_records")

	return nil
}
