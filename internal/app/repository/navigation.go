// internal/app/repository/navigation.go
package repository

import (
	"Admin-Console/internal/app/ds"
	"context"
	"fmt"
	"net/url"

	"gorm.io/gorm"
)

type NavigationRepository struct {
	db *gorm.DB
}

func NewNavigationRepository(db *gorm.DB) *NavigationRepository {
	return &NavigationRepository{db: db}
}

// Location возвращает последнее состояние адресной строки представления
func (r *NavigationRepository) Location(ctx context.Context, userKey, view string) (url.Values, error) {
	var rows []ds.ViewNavigation
	err := r.db.WithContext(ctx).
		Where("user_key = ? AND view = ?", userKey, view).
		Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return url.Values{}, nil
	}

	values, err := url.ParseQuery(rows[0].Query)
	if err != nil {
		return nil, fmt.Errorf("stored location for %s: %w", view, err)
	}
	return values, nil
}

// Navigate записывает новое состояние адресной строки
func (r *NavigationRepository) Navigate(ctx context.Context, userKey, view string, query url.Values) error {
	nav := ds.ViewNavigation{
		UserKey: userKey,
		View:    view,
		Query:   query.Encode(),
	}
	return r.db.WithContext(ctx).Create(&nav).Error
}

// History возвращает последние переходы пользователя по представлению
func (r *NavigationRepository) History(ctx context.Context, userKey, view string, limit int) ([]ds.ViewNavigation, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var rows []ds.ViewNavigation
	err := r.db.WithContext(ctx).
		Where("user_key = ? AND view = ?", userKey, view).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ForUser привязывает историю к пользователю
func (r *NavigationRepository) ForUser(userKey string) *UserNavigator {
	return &UserNavigator{repo: r, userKey: userKey}
}

// UserNavigator - адресная строка одного пользователя
type UserNavigator struct {
	repo    *NavigationRepository
	userKey string
}

func (n *UserNavigator) Location(ctx context.Context, view string) (url.Values, error) {
	return n.repo.Location(ctx, n.userKey, view)
}

func (n *UserNavigator) Navigate(ctx context.Context, view string, query url.Values) error {
	return n.repo.Navigate(ctx, n.userKey, view, query)
}
