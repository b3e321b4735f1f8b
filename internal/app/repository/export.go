// internal/app/repository/export.go
package repository

import (
	"Admin-Console/internal/app/ds"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrArchiveUnavailable = errors.New("export archive storage is not configured")

type ExportRepository struct {
	db          *gorm.DB
	minioClient *minio.Client
	bucket      string
}

func NewExportRepository(db *gorm.DB, minioClient *minio.Client, bucket string) *ExportRepository {
	return &ExportRepository{
		db:          db,
		minioClient: minioClient,
		bucket:      bucket,
	}
}

// Archive сохраняет файл выгрузки в MinIO и записывает его в историю
func (r *ExportRepository) Archive(ctx context.Context, userKey, endpoint string, format ds.ExportFormat, d *ds.Download) (*ds.ExportRecord, error) {
	if r.minioClient == nil {
		return nil, ErrArchiveUnavailable
	}

	objectKey := strings.ToLower(fmt.Sprintf("%s/%d_%s", userKey, time.Now().UnixNano(), d.FileName))
	_, err := r.minioClient.PutObject(ctx, r.bucket, objectKey, bytes.NewReader(d.Body), int64(len(d.Body)), minio.PutObjectOptions{
		ContentType: d.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload export to MinIO: %w", err)
	}

	record := &ds.ExportRecord{
		UserKey:     userKey,
		Endpoint:    strings.TrimPrefix(endpoint, "/"),
		Format:      string(format),
		FileName:    d.FileName,
		ObjectKey:   objectKey,
		ContentType: d.ContentType,
		Size:        int64(len(d.Body)),
	}
	if err := r.Record(ctx, record); err != nil {
		// Объект без записи в истории никто не найдет
		if rmErr := r.minioClient.RemoveObject(ctx, r.bucket, objectKey, minio.RemoveObjectOptions{}); rmErr != nil {
			logrus.Errorf("Failed to remove orphan export %s/%s: %v", r.bucket, objectKey, rmErr)
		}
		return nil, fmt.Errorf("record export: %w", err)
	}

	logrus.Infof("Export %s archived to %s/%s", d.FileName, r.bucket, objectKey)
	return record, nil
}

// Record добавляет запись в историю выгрузок
func (r *ExportRepository) Record(ctx context.Context, record *ds.ExportRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List возвращает историю выгрузок пользователя с пагинацией
// pageSize по умолчанию 10, максимум 50
func (r *ExportRepository) List(ctx context.Context, userKey string, page, pageSize int) ([]ds.ExportRecord, ds.PaginationInfo, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}

	// Минимальная страница - 1
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&ds.ExportRecord{}).Where("user_key = ?", userKey).Count(&total).Error; err != nil {
		return nil, ds.PaginationInfo{}, err
	}

	var records []ds.ExportRecord
	err := r.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, ds.PaginationInfo{}, err
	}

	return records, ds.NewPaginationInfo(page, pageSize, total), nil
}

// ForUser возвращает приемник выгрузок для пользователя и таблицы
func (r *ExportRepository) ForUser(userKey, endpoint string, format ds.ExportFormat) *ArchiveSink {
	return &ArchiveSink{repo: r, userKey: userKey, endpoint: endpoint, format: format}
}

// ArchiveSink кладет выгрузки в архив MinIO
type ArchiveSink struct {
	repo     *ExportRepository
	userKey  string
	endpoint string
	format   ds.ExportFormat
}

func (s *ArchiveSink) Save(ctx context.Context, d *ds.Download) (string, error) {
	record, err := s.repo.Archive(ctx, s.userKey, s.endpoint, s.format, d)
	if err != nil {
		return "", err
	}
	return record.ObjectKey, nil
}
