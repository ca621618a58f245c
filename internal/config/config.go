package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// Память под multipart, остальное gin сбрасывает во временные файлы
		MaxMultipartMemoryMB int64 `yaml:"max_multipart_memory_mb"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql, sqlite
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Admin struct {
		// Резервный пароль, работает всегда, пока не пустой
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Session struct {
		Secret          string `yaml:"secret"`
		LifetimeMinutes int    `yaml:"lifetime_minutes"`
		CookieName      string `yaml:"cookie_name"`
		Domain          string `yaml:"domain"`
		Secure          bool   `yaml:"secure"`
		SameSite        string `yaml:"same_site"` // lax, strict, none
	} `yaml:"session"`

	CORS struct {
		FrontendURL    string   `yaml:"frontend_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Contact struct {
		OwnerEmail string `yaml:"owner_email"`
	} `yaml:"contact"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // For local storage
		BaseURL   string `yaml:"base_url"`   // Public URL base
		Bucket    string `yaml:"bucket"`     // For S3/R2
		Region    string `yaml:"region"`     // For S3
		AccessKey string `yaml:"access_key"` // For S3/R2
		SecretKey string `yaml:"secret_key"` // For S3/R2
		Endpoint  string `yaml:"endpoint"`   // For R2 or custom S3
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"storage"`

	Upload struct {
		Portfolio    FileConfig `yaml:"portfolio"`
		ContactVideo FileConfig `yaml:"contact_video"`
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig читает конфиг в глобальную переменную AppConfig
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

// Load - файл необязателен: без него конфиг собирается из окружения и значений по умолчанию.
// Порядок: yaml -> переменные окружения -> defaults -> Validate.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// только env
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Env, "SERVER_ENV")
	setInt(&c.Server.Port, "SERVER_PORT")

	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.Database.Driver, "DATABASE_DRIVER")

	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Session.Secret, "SESSION_SECRET")
	setString(&c.CORS.FrontendURL, "FRONTEND_URL")

	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.BasePath, "STORAGE_BASE_PATH")
	setString(&c.Storage.BaseURL, "STORAGE_BASE_URL")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")

	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUsername, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.FromEmail, "SMTP_FROM_EMAIL")

	setString(&c.Contact.OwnerEmail, "CONTACT_OWNER_EMAIL")
}

func (c *Config) applyDefaults() {
	if c.Server.Env == "" {
		c.Server.Env = EnvDevelopment
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.MaxMultipartMemoryMB == 0 {
		c.Server.MaxMultipartMemoryMB = 32
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
		// локальный запуск без БД
		if c.Database.DSN == "" && !c.IsProduction() {
			c.Database.Driver = "sqlite"
			c.Database.DSN = "portfolio.db"
		}
	}

	if c.Session.LifetimeMinutes == 0 {
		c.Session.LifetimeMinutes = 120
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "portfolio_session"
	}
	if c.Session.SameSite == "" {
		c.Session.SameSite = "lax"
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.Type == "local" {
		if c.Storage.BasePath == "" {
			c.Storage.BasePath = "./storage/app/public"
		}
		if c.Storage.BaseURL == "" {
			c.Storage.BaseURL = fmt.Sprintf("http://localhost:%d/storage", c.Server.Port)
		}
	}

	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Photography Portfolio"
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = c.Contact.OwnerEmail
	}

	c.Upload.Portfolio.fill(DefaultPortfolioFileConfig)
	c.Upload.ContactVideo.fill(DefaultContactVideoFileConfig)
}

// Validate отсекает конфигурации, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}

	switch c.Storage.Type {
	case "local":
	case "s3", "cloudflare_r2":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage bucket is required for %s", c.Storage.Type)
		}
		if c.Storage.BaseURL == "" {
			return fmt.Errorf("storage base_url is required for %s", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}

	switch strings.ToLower(c.Session.SameSite) {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("unsupported session same_site %q", c.Session.SameSite)
	}

	if c.IsProduction() {
		if c.Session.Secret == "" {
			return errors.New("session secret is required in production")
		}
		if c.CORS.FrontendURL == "" && len(c.CORS.AllowedOrigins) == 0 {
			return errors.New("frontend_url is required in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// Addr - адрес для ginRouter.Run
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Origins - итоговый список разрешенных Origin для CORS и проверки небезопасных методов
func (c *Config) Origins() []string {
	if len(c.CORS.AllowedOrigins) > 0 {
		return c.CORS.AllowedOrigins
	}

	var origins []string
	if !c.IsProduction() {
		origins = append(origins,
			"http://localhost:3000",
			"http://localhost:8080",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8080",
			"http://127.0.0.1:5173",
		)
	}
	if c.CORS.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(c.CORS.FrontendURL, "/"))
	}
	return origins
}

func GetConfig() *Config {
	if AppConfig == nil {
		if _, err := LoadConfig(); err != nil {
			panic(err)
		}
	}
	return AppConfig
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
