// Package db はPostgreSQLへのGORM接続を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "holdings_backend/internal/feature/auth/domain/entity"
	portfolioentity "holdings_backend/internal/feature/portfolio/domain/entity"
	watchlistentity "holdings_backend/internal/feature/watchlist/domain/entity"
)

const retryInterval = 3 * time.Second

// Config はデータベース接続の設定を保持します。
type Config struct {
	// URL が設定されている場合は他のフィールドより優先されます。
	URL      string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfigFromEnv は環境変数から接続設定を読み込みます。
// 接続URLは STORAGE_URL → POSTGRES_URL → DATABASE_URL の順で解決します。
func LoadConfigFromEnv() Config {
	url := os.Getenv("STORAGE_URL")
	if url == "" {
		url = os.Getenv("POSTGRES_URL")
	}
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	return Config{
		URL:      url,
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
}

// BuildDSN は設定からPostgreSQLのDSN文字列を生成します。
// URLが指定されている場合はそのまま返します。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, cfg.User, cfg.Password, cfg.Name)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替え可能にしています。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は接続に成功するまで一定間隔でリトライします。
// timeout を超えた場合は最後のエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB は環境変数の設定でPostgreSQLへ接続します。起動直後のDB待ちを
// 考慮して最大60秒までリトライします。RUN_MIGRATIONS=trueの場合は
// スキーマを自動マイグレーションします。
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfigFromEnv())

	db, err := ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&portfolioentity.Holding{},
			&watchlistentity.WatchlistEntry{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
