package config

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// DBPathEnv overrides the SQLite file location regardless of prefix.
const DBPathEnv = "DB_PATH"

// DefaultDBFile is created next to the executable when no path is configured.
const DefaultDBFile = "data.sqlite"

// ---- Root ----

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	SQLite    SQLiteConfig    `mapstructure:"sqlite"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type SQLiteConfig struct {
	Path         string        `mapstructure:"path"`
	BusyTimeout  time.Duration `mapstructure:"busy_timeout"`
	PingTimeout  time.Duration `mapstructure:"ping_timeout"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type KafkaConfig struct {
	Brokers        []string `mapstructure:"brokers"`
	Topic          string   `mapstructure:"topic"`
	GroupID        string   `mapstructure:"group_id"`
	MinBytes       int      `mapstructure:"min_bytes"`
	MaxBytes       int      `mapstructure:"max_bytes"`
	CommitInterval int      `mapstructure:"commit_interval_ms"`
}

type RateLimitConfig struct {
	RPS   int `mapstructure:"rps"`
	Burst int `mapstructure:"burst"`
}

type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env
// overrides (LEADS_*, plus DB_PATH for the database file).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.MergeInConfig(); err != nil {
				return Config{}, err
			}
		}
	}

	// env override (LEADS_SQLITE_PATH, LEADS_HTTP_ADDR, ...)
	v.SetEnvPrefix("LEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.SQLite.Path = ResolveDBPath(cfg.SQLite.Path)
	return cfg, nil
}

// ResolveDBPath picks the database file: DB_PATH, then the configured path,
// then DefaultDBPath.
func ResolveDBPath(configured string) string {
	if p := strings.TrimSpace(os.Getenv(DBPathEnv)); p != "" {
		return p
	}
	if p := strings.TrimSpace(configured); p != "" {
		return p
	}
	return DefaultDBPath()
}

// DefaultDBPath is data.sqlite colocated with the running binary, or the
// working directory when the executable cannot be located.
func DefaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDBFile
	}
	return filepath.Join(filepath.Dir(exe), DefaultDBFile)
}
