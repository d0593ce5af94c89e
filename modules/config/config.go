package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rasp_unitech/modules/database"
	"rasp_unitech/modules/unitech"
)

type Config struct {
	Token          string        `yaml:"token"`
	DevChat        int64         `yaml:"dev_chat"`
	UnitechURL     string        `yaml:"unitech_url"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	DefaultStudent int64         `yaml:"default_student"`
	DB             database.DB   `yaml:"db"`
	LogsDir        string        `yaml:"logs_dir"`
	LogsMaxAge     time.Duration `yaml:"logs_max_age"`
	ListenAddr     string        `yaml:"listen_addr"`
	CleanupCron    string        `yaml:"cleanup_cron"`
	DialogTTL      time.Duration `yaml:"dialog_ttl"`
}

var tokenRe = regexp.MustCompile(`^\d{8,10}:[A-Za-z0-9_-]{35}$`)

func Default() Config {
	return Config{
		UnitechURL:     unitech.DefaultURL,
		FetchTimeout:   10 * time.Second,
		DefaultStudent: 90893,
		DB:             database.DB{Driver: "sqlite3", Schema: "bot.db"},
		LogsDir:        "Logs",
		LogsMaxAge:     30 * 24 * time.Hour,
		CleanupCron:    "@every 10m",
		DialogTTL:      time.Hour,
	}
}

// Загрузка настроек: умолчания, затем YAML-файл (если path не пуст),
// затем переменные окружения и .env
func Load(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.fromEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (cfg *Config) fromEnv() error {
	str := map[string]*string{
		"TELEGRAM_APITOKEN": &cfg.Token,
		"UNITECH_URL":       &cfg.UnitechURL,
		"DB_DRIVER":         &cfg.DB.Driver,
		"MYSQL_USER":        &cfg.DB.User,
		"MYSQL_PASS":        &cfg.DB.Pass,
		"MYSQL_HOST":        &cfg.DB.Host,
		"MYSQL_DB":          &cfg.DB.Schema,
		"LOGS_DIR":          &cfg.LogsDir,
		"LISTEN_ADDR":       &cfg.ListenAddr,
		"CLEANUP_CRON":      &cfg.CleanupCron,
	}
	for key, dst := range str {
		if val, ok := os.LookupEnv(key); ok {
			*dst = val
		}
	}

	ints := map[string]*int64{
		"DEVELOPER_CHAT_ID":  &cfg.DevChat,
		"DEFAULT_STUDENT_ID": &cfg.DefaultStudent,
	}
	for key, dst := range ints {
		val, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"FETCH_TIMEOUT": &cfg.FetchTimeout,
		"DIALOG_TTL":    &cfg.DialogTTL,
	}
	for key, dst := range durations {
		val, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
		*dst = d
	}

	return nil
}

func (cfg Config) Validate() error {
	if !tokenRe.MatchString(cfg.Token) {
		return fmt.Errorf("invalid telegram token")
	}
	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", cfg.FetchTimeout)
	}
	if cfg.DefaultStudent <= 0 {
		return fmt.Errorf("bad default student id: %d", cfg.DefaultStudent)
	}

	return nil
}
