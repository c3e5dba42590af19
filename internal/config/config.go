// Package config resolves settings from defaults, an optional YAML file and
// the environment, in that order of precedence.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "PREVENTLY_CONFIG"

const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Firebase FirebaseConfig `yaml:"firebase"`
	LLM      LLMConfig      `yaml:"llm"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Timezone string         `yaml:"timezone"`

	location *time.Location `yaml:"-"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	FrontendURL  string        `yaml:"frontendUrl"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type StoreConfig struct {
	Backend     string `yaml:"backend"`
	DatabaseURL string `yaml:"databaseUrl"`
	SQLitePath  string `yaml:"sqlitePath"`
}

type FirebaseConfig struct {
	ProjectID         string `yaml:"projectId"`
	CredentialsPath   string `yaml:"credentialsPath"`
	APIKey            string `yaml:"apiKey"`
	GoogleRedirectURI string `yaml:"googleRedirectUri"`
}

type LLMConfig struct {
	AnthropicAPIKey  string `yaml:"anthropicApiKey"`
	OpenAIAPIKey     string `yaml:"openaiApiKey"`
	SystemPromptPath string `yaml:"systemPromptPath"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file named by PREVENTLY_CONFIG (if any) and applies
// environment overrides on top.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			slog.Warn("config: cannot read file, using defaults", "path", path, "error", err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				slog.Warn("config: cannot parse file, using defaults", "path", path, "error", err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Location is the zone used to bucket analytics by calendar date.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	return time.Local
}

func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.FrontendURL, "FRONTEND_URL")
	setDuration(&c.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	setDuration(&c.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")

	setString(&c.Store.Backend, "STORE_BACKEND")
	setString(&c.Store.DatabaseURL, "DATABASE_URL")
	setString(&c.Store.SQLitePath, "SQLITE_PATH")

	setString(&c.Firebase.ProjectID, "FIREBASE_PROJECT_ID")
	setString(&c.Firebase.CredentialsPath, "FIREBASE_SERVICE_ACCOUNT_KEY_PATH")
	setString(&c.Firebase.APIKey, "FIREBASE_API_KEY")
	setString(&c.Firebase.GoogleRedirectURI, "GOOGLE_REDIRECT_URI")

	setString(&c.LLM.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.LLM.SystemPromptPath, "SYSTEM_PROMPT_PATH")

	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Timezone, "TIMEZONE")

	c.Store.Backend = strings.ToLower(c.Store.Backend)
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("15s") or a plain number of seconds.
func setDuration(dst *time.Duration, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return
	}
	slog.Warn("config: invalid duration", "env", env, "value", v)
}

func (c *Config) bindTimezone() {
	if c.Timezone == "" {
		c.location = time.Local
		return
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config: unknown timezone, using local time", "timezone", c.Timezone, "error", err)
		loc = time.Local
	}
	c.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != "" {
		base.Server.Port = override.Server.Port
	}
	if override.Server.FrontendURL != "" {
		base.Server.FrontendURL = override.Server.FrontendURL
	}
	if override.Server.ReadTimeout > 0 {
		base.Server.ReadTimeout = override.Server.ReadTimeout
	}
	if override.Server.WriteTimeout > 0 {
		base.Server.WriteTimeout = override.Server.WriteTimeout
	}

	if override.Store.Backend != "" {
		base.Store.Backend = override.Store.Backend
	}
	if override.Store.DatabaseURL != "" {
		base.Store.DatabaseURL = override.Store.DatabaseURL
	}
	if override.Store.SQLitePath != "" {
		base.Store.SQLitePath = override.Store.SQLitePath
	}

	if override.Firebase.ProjectID != "" {
		base.Firebase.ProjectID = override.Firebase.ProjectID
	}
	if override.Firebase.CredentialsPath != "" {
		base.Firebase.CredentialsPath = override.Firebase.CredentialsPath
	}
	if override.Firebase.APIKey != "" {
		base.Firebase.APIKey = override.Firebase.APIKey
	}
	if override.Firebase.GoogleRedirectURI != "" {
		base.Firebase.GoogleRedirectURI = override.Firebase.GoogleRedirectURI
	}

	if override.LLM.AnthropicAPIKey != "" {
		base.LLM.AnthropicAPIKey = override.LLM.AnthropicAPIKey
	}
	if override.LLM.OpenAIAPIKey != "" {
		base.LLM.OpenAIAPIKey = override.LLM.OpenAIAPIKey
	}
	if override.LLM.SystemPromptPath != "" {
		base.LLM.SystemPromptPath = override.LLM.SystemPromptPath
	}

	if override.Redis.URL != "" {
		base.Redis.URL = override.Redis.URL
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Store: StoreConfig{
			Backend:    BackendFirestore,
			SQLitePath: "prevently.db",
		},
		Firebase: FirebaseConfig{
			GoogleRedirectURI: "http://localhost:3000",
		},
		Log: LogConfig{Level: "info"},
	}
}
