package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Postgres接続設定。セクションが無ければSQLiteにフォールバックする。
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// 起動時にapprovedで投入するユーザー
type BootstrapUser struct {
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Role         string
}

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）
	Env  string // dev/prod

	Postgres   *PostgresConfig // nilならSQLite
	SQLitePath string          // ローカルDBファイル

	JWTSecret   string // セッション署名シークレット
	SessionFile string // auto-login用セッションファイル

	LowStockThreshold int64

	LogLevel string

	BootstrapUsers []BootstrapUser
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		Env:         getenv("GO_ENV", "dev"),
		SQLitePath:  getenv("SQLITE_PATH", "inventory.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SessionFile: getenv("SESSION_FILE", ".session/user_session.json"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	threshold, err := getenvInt64("LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.LowStockThreshold = threshold

	// POSTGRES_HOSTがあればPostgres、なければSQLite
	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		cfg.Postgres = &PostgresConfig{
			Host:     host,
			Port:     getenv("POSTGRES_PORT", "5432"),
			User:     getenv("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   getenv("POSTGRES_DB", "inventory"),
			SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		}
		if cfg.Postgres.Password == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required when POSTGRES_HOST is set")
		}
	}

	users, err := parseBootstrapUsers(os.Getenv("BOOTSTRAP_USERS"))
	if err != nil {
		return Config{}, err
	}
	cfg.BootstrapUsers = users

	return cfg, nil
}

// BOOTSTRAP_USERS="username:bcrypt_hash:display name:role,..." を分解する。
// bcryptハッシュは ':' を含まないので区切りに使える。
func parseBootstrapUsers(raw string) ([]BootstrapUser, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var users []BootstrapUser
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("BOOTSTRAP_USERS entry must be username:hash:name:role, got %q", entry)
		}

		u := BootstrapUser{
			Username:     strings.TrimSpace(parts[0]),
			PasswordHash: strings.TrimSpace(parts[1]),
			Name:         strings.TrimSpace(parts[2]),
			Role:         strings.TrimSpace(parts[3]),
		}
		if u.Username == "" || u.PasswordHash == "" {
			return nil, fmt.Errorf("BOOTSTRAP_USERS entry missing username or hash: %q", entry)
		}
		users = append(users, u)
	}

	return users, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
