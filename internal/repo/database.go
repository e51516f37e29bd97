package repo

import (
	"CycleKeeper/internal/model"
	"strings"

	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает подключение к БД и прогоняет миграции.
// DSN со схемой postgres трактуется как PostgreSQL, любой другой
// непустой DSN — как путь к файлу SQLite. Драйвер SQLite — modernc,
// без cgo, поэтому бинарник собирается с CGO_ENABLED=0.
func InitDB(dsn, sqlitePath string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case dsn != "" && isPostgresDSN(dsn):
		dial = gormpostgres.Open(dsn)
	case dsn != "":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: sqlitePath}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Analysis{}); err != nil {
		return nil, err
	}
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
