package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"bucketlist/internal/domain"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Models 参与 AutoMigrate 的全部表
func Models() []any {
	return []any{
		&domain.User{},
		&domain.BucketList{},
		&domain.BucketListItem{},
		&domain.Category{},
		&domain.LibraryIdea{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

var gooseDialects = map[string]goose.Dialect{
	"postgres": goose.DialectPostgres,
	"sqlite":   goose.DialectSQLite3,
}

// RunExtraMigrations 在 AutoMigrate 之后补充 gorm 表达不了的索引；
// 返回 false 表示该驱动没有额外迁移（mysql 不支持 CREATE INDEX IF NOT EXISTS）
func RunExtraMigrations(ctx context.Context, db *gorm.DB, driver string) (bool, error) {
	if driver == "" {
		driver = "postgres"
	}
	dialect, ok := gooseDialects[driver]
	if !ok {
		return false, nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false, err
	}
	sub, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		return false, err
	}
	p, err := goose.NewProvider(dialect, sqlDB, sub)
	if err != nil {
		return false, fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return false, fmt.Errorf("goose up: %w", err)
	}
	return true, nil
}
