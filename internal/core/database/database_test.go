package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketlist/internal/domain"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	got := normalizeMySQLDSN("jdbc:mysql://root:pw@127.0.0.1:3306/bucket?useSSL=false&serverTimezone=UTC&characterEncoding=utf8", "", "")
	assert.Contains(t, got, "root:pw@tcp(127.0.0.1:3306)/bucket?")
	assert.Contains(t, got, "tls=false")
	assert.Contains(t, got, "loc=UTC")
	assert.Contains(t, got, "charset=utf8")
	assert.Contains(t, got, "parseTime=true")
	assert.NotContains(t, got, "useSSL")

	got = normalizeMySQLDSN("mysql://127.0.0.1:3306/bucket", "app", "secret")
	assert.Contains(t, got, "app:secret@tcp(127.0.0.1:3306)/bucket")

	native := "u:p@tcp(db:3306)/bucket?parseTime=true"
	assert.Equal(t, native, normalizeMySQLDSN(native, "x", "y"))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/x", maskDSN("root:pw@tcp(db:3306)/x"))
	assert.Equal(t, "tcp(db)/x", maskDSN("tcp(db)/x"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestAutoMigrateAndExtraMigrations_SQLite(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	ran, err := RunExtraMigrations(context.Background(), db, "sqlite")
	require.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, db.Migrator().HasIndex(&domain.LibraryIdea{}, "idx_library_ideas_lower_title"))

	// 幂等
	_, err = RunExtraMigrations(context.Background(), db, "sqlite")
	require.NoError(t, err)

	ran, err = RunExtraMigrations(context.Background(), db, "mysql")
	require.NoError(t, err)
	assert.False(t, ran)
}
