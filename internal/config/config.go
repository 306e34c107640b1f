package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv string
	Port   string

	DB     DBConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Outbox OutboxConfig
	SMTP   SMTPConfig

	JWTSecret string

	TelegramBotToken    string
	AdminEmail          string
	AdminTelegramChatID int64

	// akun admin awal, dibuat saat startup jika email belum terdaftar
	AdminID       string
	AdminName     string
	AdminPassword string

	// nil: saldo cuti boleh negatif
	LeaveBalanceFloor *int
}

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
	MaxRetries int
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Broker            string
	NotificationTopic string
	GroupID           string
	MaxRetries        int
}

type OutboxConfig struct {
	PollInterval time.Duration
	InProcess    bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Load membaca .env (jika ada) lalu environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),
		DB: DBConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "hr_management"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "hr.db"),
			MaxRetries: getEnvAsInt("DB_MAX_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			MaxRetries: getEnvAsInt("REDIS_MAX_RETRIES", 5),
		},
		Kafka: KafkaConfig{
			Broker:            getEnv("KAFKA_BROKER", ""),
			NotificationTopic: getEnv("NOTIFICATION_TOPIC", "hr.notification.requested.v1"),
			GroupID:           getEnv("NOTIFICATION_GROUP_ID", "hr-management-notifier"),
			MaxRetries:        getEnvAsInt("KAFKA_MAX_RETRIES", 5),
		},
		Outbox: OutboxConfig{
			PollInterval: getEnvAsDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
			InProcess:    getEnvAsBool("OUTBOX_INPROCESS", false),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			Timeout:  getEnvAsDuration("SMTP_TIMEOUT", 10*time.Second),
		},
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminEmail:          getEnv("ADMIN_EMAIL", ""),
		AdminTelegramChatID: int64(getEnvAsInt("ADMIN_TELEGRAM_CHAT_ID", 0)),
		AdminID:             getEnv("ADMIN_ID", "ADMIN"),
		AdminName:           getEnv("ADMIN_NAME", "Administrator"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
	}

	if raw, ok := os.LookupEnv("LEAVE_BALANCE_FLOOR"); ok && strings.TrimSpace(raw) != "" {
		floor, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid LEAVE_BALANCE_FLOOR %q: %w", raw, err)
		}
		cfg.LeaveBalanceFloor = &floor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.SSLMode,
	)
}

// AdminAddresses: alamat yang menerima salinan notifikasi pengajuan baru.
func (c *Config) AdminAddresses() []string {
	var addrs []string
	if c.AdminEmail != "" {
		addrs = append(addrs, c.AdminEmail)
	}
	if tg := c.AdminTelegramAddress(); tg != "" {
		addrs = append(addrs, tg)
	}
	return addrs
}

// AdminTelegramAddress mengembalikan alamat sink telegram admin, kosong jika tidak diset.
func (c *Config) AdminTelegramAddress() string {
	if c.AdminTelegramChatID == 0 {
		return ""
	}
	return fmt.Sprintf("tg:%d", c.AdminTelegramChatID)
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}
	return defaultVal
}
