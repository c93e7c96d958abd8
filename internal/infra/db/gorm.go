package db

import (
	"fmt"

	"app/internal/config"
	"app/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
// Postgres設定があればPostgres、なければローカルのSQLiteファイルを使う。
func Connect(cfg config.Config) (*gorm.DB, error) {
	if cfg.Postgres != nil {
		pg := cfg.Postgres
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			pg.Host, pg.Port, pg.User, pg.Password, pg.DBName, pg.SSLMode,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
}

// Migrate はスキーマを作成する（既存DBに対しても安全）。
// 失敗したら起動を中止する前提で呼び出し側がエラー処理する。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.Product{},
		&model.Movement{},
		&model.Party{},
		&model.User{},
	)
}
