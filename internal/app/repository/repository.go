package repository

import (
	"Admin-Console/internal/app/config"
	"Admin-Console/internal/app/dsn"
	"Admin-Console/internal/app/redis"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	redisClient *redis.Client
	Navigation  *NavigationRepository
	Export      *ExportRepository
}

func NewRepository(cfg *config.Config) (*Repository, error) {
	// Инициализируем базу данных
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Инициализируем Redis клиент
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize Redis client: %v", err)
		// Продолжаем без Redis, но логируем предупреждение
		redisClient = nil
	}

	// Инициализируем MinIO клиент
	minioClient, err := InitMinIOClient(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize MinIO client: %v", err)
		// Выгрузки не архивируются
		minioClient = nil
	}

	return New(db, redisClient, minioClient, cfg.MinioBucket), nil
}

// New собирает репозиторий из готовых подключений
func New(db *gorm.DB, redisClient *redis.Client, minioClient *minio.Client, bucket string) *Repository {
	return &Repository{
		db:          db,
		redisClient: redisClient,
		Navigation:  NewNavigationRepository(db),
		Export:      NewExportRepository(db, minioClient, bucket),
	}
}

// GetRedisClient возвращает Redis клиент
func (r *Repository) GetRedisClient() *redis.Client {
	return r.redisClient
}

// Close закрывает все соединения
func (r *Repository) Close() {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			logrus.Errorf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := r.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("Error closing database: %v", err)
		}
	}
}

// InitMinIOClient подключается к MinIO и создает bucket архива выгрузок
func InitMinIOClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()

	// Создаем bucket если не существует
	exists, err := minioClient.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return minioClient, nil
}
