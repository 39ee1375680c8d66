package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// Внешний URL приложения - нужен для ссылок в письмах
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		// Срок жизни сессионного токена, часы
		SessionTTLHours int `yaml:"session_ttl_hours"`
		// Срок жизни ссылки верификации email, минуты
		VerifyTTLMinutes int `yaml:"verify_ttl_minutes"`
		// Срок жизни ссылки сброса пароля, минуты
		ResetTTLMinutes int `yaml:"reset_ttl_minutes"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // для local
		BaseURL   string `yaml:"base_url"`   // публичный URL файлов
		Bucket    string `yaml:"bucket"`     // для s3
		Region    string `yaml:"region"`     // для s3
		AccessKey string `yaml:"access_key"` // для s3
		SecretKey string `yaml:"secret_key"` // для s3
		Endpoint  string `yaml:"endpoint"`   // для R2/MinIO
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // максимальный размер файла, байты
		MaxFiles     int      `yaml:"max_files"`     // максимум файлов на пост
		AllowedTypes []string `yaml:"allowed_types"` // разрешенные MIME-типы
	} `yaml:"upload"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию: из config.yaml в обычном режиме,
// из переменных окружения - когда задан DATABASE_URL (режим теста/контейнера).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.BaseURL = os.Getenv("SERVER_BASE_URL")
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Email.FromEmail = "noreply@blogapp.test"
	cfg.Email.FromName = "BlogApp"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults проставляет значения по умолчанию там,
// где конфиг их не задал.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.SessionTTLHours == 0 {
		cfg.JWT.SessionTTLHours = 20
	}
	if cfg.JWT.VerifyTTLMinutes == 0 {
		cfg.JWT.VerifyTTLMinutes = 30
	}
	if cfg.JWT.ResetTTLMinutes == 0 {
		cfg.JWT.ResetTTLMinutes = 15
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 4 * 1024 * 1024 // 4MB
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 10
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif",
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
