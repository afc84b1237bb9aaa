package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	"github.com/m04kA/SMC-SalonAgenda/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Calendar  CalendarConfig  `toml:"calendar"`

	loc *time.Location
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	CORSOrigins     []string `toml:"cors_origins"`
}

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

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения в формате postgres:// для golang-migrate
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL время жизни записей кэша занятости
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"` // пусто = административные маршруты закрыты
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// HoursConfig часы работы одного дня недели
type HoursConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

type ScheduleConfig struct {
	Timezone            string `toml:"timezone"`
	SlotIntervalMinutes int    `toml:"slot_interval_minutes"`
	TxMaxAttempts       int    `toml:"tx_max_attempts"`

	// Ключи: monday..sunday. Отсутствующий день недели считается выходным.
	// Если таблица не задана целиком, используется domain.DefaultWorkingHoursTable.
	WorkingHours map[string]HoursConfig `toml:"working_hours"`
}

type CalendarConfig struct {
	Days int `toml:"days"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load читает .env (если есть), TOML файл и переменные окружения.
// CONFIG_PATH переопределяет path.
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse разбирает конфигурацию из строки TOML без учёта окружения
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_HOST":         &c.Database.Host,
		"DB_PASSWORD":     &c.Database.Password,
		"REDIS_ADDR":      &c.Redis.Addr,
		"AUTH_JWT_SECRET": &c.Auth.JWTSecret,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-agenda"
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 300
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 1
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = domain.DefaultTimezone
	}
	if c.Schedule.SlotIntervalMinutes == 0 {
		c.Schedule.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if c.Schedule.TxMaxAttempts == 0 {
		c.Schedule.TxMaxAttempts = 5
	}
	if c.Calendar.Days == 0 {
		c.Calendar.Days = domain.DefaultCalendarDays
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Schedule.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("%w: slot_interval_minutes must be positive, got %d",
			ErrInvalidConfig, c.Schedule.SlotIntervalMinutes)
	}
	if c.Schedule.TxMaxAttempts <= 0 {
		return fmt.Errorf("%w: tx_max_attempts must be positive, got %d", ErrInvalidConfig, c.Schedule.TxMaxAttempts)
	}
	if c.Calendar.Days <= 0 || c.Calendar.Days > domain.MaxCalendarDays {
		return fmt.Errorf("%w: calendar days must be in 1..%d, got %d",
			ErrInvalidConfig, domain.MaxCalendarDays, c.Calendar.Days)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: ratelimit rps and burst must not be negative", ErrInvalidConfig)
	}

	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return fmt.Errorf("%w: unknown timezone %q: %w", ErrInvalidConfig, c.Schedule.Timezone, err)
	}
	c.loc = loc

	if _, err := c.WorkingHoursTable(); err != nil {
		return err
	}
	return nil
}

// Location часовой пояс салона. Доступен после Validate.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// WorkingHoursTable строит таблицу часов работы из секции [schedule.working_hours]
func (c *Config) WorkingHoursTable() (domain.WorkingHoursTable, error) {
	if c.Schedule.WorkingHours == nil {
		return domain.DefaultWorkingHoursTable(), nil
	}

	table := make(domain.WorkingHoursTable, len(c.Schedule.WorkingHours))
	for name, hours := range c.Schedule.WorkingHours {
		weekday, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}

		wh := domain.WorkingHours{Open: types.TimeString(hours.Open), Close: types.TimeString(hours.Close)}
		if err := wh.Validate(); err != nil {
			return nil, fmt.Errorf("%w: working_hours.%s: %w", ErrInvalidConfig, name, err)
		}
		table[weekday] = wh
	}
	return table, nil
}
