package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	HTTP     HTTPConfig
	Payroll  PayrollConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	Migrate    bool
	MaxRetries int
}

// DSN returns the key/value connection string understood by pgx and lib/pq.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL returns the postgres:// form used by the migrator.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type PayrollConfig struct {
	CompanyName        string
	NotifyTimeout      time.Duration
	RenderTimeout      time.Duration
	OutboxPollInterval time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Load reads a local .env when present and then resolves every key from the
// environment, falling back to the defaults below.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("db.host"),
			Port:       v.GetString("db.port"),
			User:       v.GetString("db.user"),
			Password:   v.GetString("db.password"),
			Name:       v.GetString("db.name"),
			SSLMode:    v.GetString("db.sslmode"),
			Migrate:    v.GetBool("db.migrate"),
			MaxRetries: v.GetInt("db.max_retries"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("kafka.brokers")),
			GroupID: v.GetString("kafka.group_id"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		SMTP: SMTPConfig{
			Enabled:  v.GetBool("smtp.enabled"),
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			Username: v.GetString("smtp.username"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
			FromName: v.GetString("smtp.from_name"),
			UseTLS:   v.GetBool("smtp.use_tls"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			RateLimitRPS:   v.GetFloat64("rate_limit.rps"),
			RateLimitBurst: v.GetInt("rate_limit.burst"),
		},
		Payroll: PayrollConfig{
			CompanyName:        v.GetString("company.name"),
			NotifyTimeout:      v.GetDuration("notify.timeout"),
			RenderTimeout:      v.GetDuration("render.timeout"),
			OutboxPollInterval: v.GetDuration("outbox.poll_interval"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "payroll")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.migrate", true)
	v.SetDefault("db.max_retries", 5)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")

	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.group_id", "go-payroll-email-delivery")

	v.SetDefault("jwt.secret", "")

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.from_name", "Payroll")
	v.SetDefault("smtp.use_tls", false)

	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("rate_limit.rps", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("company.name", "Company")
	v.SetDefault("notify.timeout", 30*time.Second)
	v.SetDefault("render.timeout", 30*time.Second)
	v.SetDefault("outbox.poll_interval", 3*time.Second)
}

func (c *Config) validate() error {
	var errs []error
	if c.IsProduction() && c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		errs = append(errs, errors.New("SMTP_HOST and SMTP_FROM are required when SMTP_ENABLED is set"))
	}
	if c.Payroll.NotifyTimeout <= 0 {
		errs = append(errs, errors.New("NOTIFY_TIMEOUT must be positive"))
	}
	if c.Payroll.RenderTimeout <= 0 {
		errs = append(errs, errors.New("RENDER_TIMEOUT must be positive"))
	}
	if c.HTTP.RateLimitRPS <= 0 || c.HTTP.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
