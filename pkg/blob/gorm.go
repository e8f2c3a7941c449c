package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/guardian-io/guardian/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CollectionBlob is the single table schema: one row per collection.
type CollectionBlob struct {
	Name      string    `gorm:"primaryKey"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CollectionBlob) TableName() string {
	return "collection_blobs"
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm handle as a blob store, migrating the blob table.
func NewGormStore(db *gorm.DB) (Store, error) {
	if db == nil {
		return nil, errors.New("gorm handle is required")
	}
	if err := db.AutoMigrate(&CollectionBlob{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var row CollectionBlob
	err := s.db.WithContext(ctx).Where("name = ?", collection).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.Data, nil
}

func (s *gormStore) Save(ctx context.Context, collection string, data []byte) error {
	row := CollectionBlob{Name: collection, Data: data}
	return s.db.WithContext(ctx).Save(&row).Error
}

// Dialect resolves the gorm dialector for the configured backend.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.StoreBackend {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
			cfg.DBSSLMode,
		)), nil
	case "sqlite":
		return sqlite.Open(cfg.StorePath), nil
	default:
		return nil, fmt.Errorf("unsupported %s backend", cfg.StoreBackend)
	}
}

// OpenGorm opens the configured relational backend and wraps it as a blob store.
func OpenGorm(cfg config.Config) (Store, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialect, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return NewGormStore(db)
}
