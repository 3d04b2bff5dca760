package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server holds the API process settings.
type Server struct {
	App      AppConfig
	Log      LogConfig
	Store    StoreConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
	Datasets DatasetsConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type StoreConfig struct {
	Path string // SQLite file holding saved exercises
}

type CacheConfig struct {
	TTL time.Duration // how long analysis results stay retrievable by ID
}

type HTTPConfig struct {
	CORSAllowOrigins []string
	StaticDir        string
}

type DatasetsConfig struct {
	Dir string // directory of dataset presets (*.yaml)
}

// LoadServer reads settings with this priority (highest first):
// 1. Environment variables with COOP_ prefix (e.g. COOP_APP_PORT)
// 2. config.yaml in the working directory, if any
// 3. Built-in defaults
func LoadServer() (*Server, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("COOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Kept for deployments that still set the old variable names.
	_ = v.BindEnv("app.port", "COOP_APP_PORT", "API_PORT")
	_ = v.BindEnv("app.env", "COOP_APP_ENV", "API_ENV")

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("store.path", "data/coop.db")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("http.cors_allow_origins", []string{"*"})
	v.SetDefault("http.static_dir", "./web/dist")
	v.SetDefault("datasets.dir", "examples/datasets")
}

func fromViper(v *viper.Viper) (*Server, error) {
	s := &Server{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Store: StoreConfig{
			Path: v.GetString("store.path"),
		},
		Cache: CacheConfig{
			TTL: v.GetDuration("cache.ttl"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			StaticDir:        v.GetString("http.static_dir"),
		},
		Datasets: DatasetsConfig{
			Dir: v.GetString("datasets.dir"),
		},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Validate() error {
	if s.App.Port == "" {
		return fmt.Errorf("app.port is required")
	}
	if s.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if s.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %s)", s.Cache.TTL)
	}
	return nil
}

func (s *Server) IsProduction() bool {
	return s.App.Env == "production"
}
