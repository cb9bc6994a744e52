package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mamadbah2/feedbook/internal/repository/store"
)

var _ store.Store = (*Repository)(nil)

// collectionRow is one record collection, mirroring a browser storage key.
type collectionRow struct {
	Name      string `gorm:"primaryKey;type:varchar(64)"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (collectionRow) TableName() string {
	return "record_collections"
}

// Repository implements store.Store on a local SQLite file.
type Repository struct {
	db *gorm.DB
}

// Open creates the database file if needed and migrates the collection table.
func Open(path string, logMode bool) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gormLogger := logger.Default
	if !logMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Load fetches the JSON array stored for a collection.
func (r *Repository) Load(ctx context.Context, collection string) ([]byte, error) {
	var row collectionRow
	err := r.db.WithContext(ctx).First(&row, "name = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", collection, err)
	}
	return []byte(row.Data), nil
}

// Save upserts every write inside one transaction.
func (r *Repository) Save(ctx context.Context, writes ...store.Write) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, w := range writes {
			if w.Collection == "" {
				return fmt.Errorf("collection name must not be empty")
			}
			row := collectionRow{Name: w.Collection, Data: string(w.Data), UpdatedAt: now}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("save collection %s: %w", w.Collection, err)
			}
		}
		return nil
	})
}

// Close releases the underlying connection pool.
func (r *Repository) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
