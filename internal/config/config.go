package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Storage  StorageConfig  `toml:"storage"`
	Schedule ScheduleConfig `toml:"schedule"`
	Admin    AdminConfig    `toml:"admin"`
	Names    NamesConfig    `toml:"names"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды

	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`

	RateLimit float64 `toml:"rate_limit"` // запросов в секунду на IP, 0 отключает лимит
	RateBurst int     `toml:"rate_burst"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig настройки хранилища бронирований
// Driver: "file" (JSON файл, по умолчанию) или "postgres"
type StorageConfig struct {
	Driver   string         `toml:"driver"`
	File     FileStorage    `toml:"file"`
	Database DatabaseConfig `toml:"database"`
}

// FileStorage настройки файлового хранилища
type FileStorage struct {
	BookingsFile string `toml:"bookings_file"`
	AuditDir     string `toml:"audit_dir"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// ScheduleConfig настройки рабочего дня и окна дат
type ScheduleConfig struct {
	WindowDays   int  `toml:"window_days"`
	SkipWeekends bool `toml:"skip_weekends"`
	LockTimeout  int  `toml:"lock_timeout"` // секунды, таймаут захвата блокировки слота
}

// AdminConfig настройки административного доступа
// Токен может быть переопределён переменной окружения BOOKING_ADMIN_TOKEN
type AdminConfig struct {
	Token string `toml:"token"`
}

// NamesConfig настройки справочников имён
type NamesConfig struct {
	DisplayNamesFile string `toml:"display_names_file"`
	BadWordsFile     string `toml:"bad_words_file"`
}

// DSN собирает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load читает конфигурацию из TOML файла и применяет переопределения
// из окружения
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,

			CORSAllowedOrigins: []string{"*"},

			RateLimit: 20,
			RateBurst: 40,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "timeslot-service",
		},
		Storage: StorageConfig{
			Driver: "file",
			File: FileStorage{
				BookingsFile: "bookings.json",
				AuditDir:     ".",
			},
		},
		Schedule: ScheduleConfig{
			WindowDays:  3,
			LockTimeout: 5,
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if token := os.Getenv("BOOKING_ADMIN_TOKEN"); token != "" {
		cfg.Admin.Token = token
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет корректность конфигурации
func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid http_port %d", c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.File.BookingsFile == "" {
			return fmt.Errorf("config: storage.file.bookings_file is required")
		}
	case "postgres":
		if c.Storage.Database.Host == "" || c.Storage.Database.DBName == "" {
			return fmt.Errorf("config: storage.database host and dbname are required")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	if c.Schedule.WindowDays <= 0 {
		return fmt.Errorf("config: schedule.window_days must be positive")
	}

	return nil
}
