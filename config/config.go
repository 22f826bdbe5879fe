package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lc "github.com/ncobase/datatable/logging/logger/config"
	"github.com/ncobase/datatable/query"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DATATABLE_SERVER_PORT.
const EnvPrefix = "DATATABLE"

// Config represents the configuration implementation.
type Config struct {
	AppName   string
	RunMode   string
	Server    *Server
	Table     *Table
	Navigator *Navigator
	Logger    *lc.Config
	Observes  *Observes
	Viper     *viper.Viper

	mu sync.Mutex
}

// Server configures the reference endpoint.
type Server struct {
	Host string
	Port int
	// Router is "gin" or "mux".
	Router     string
	Route      string
	Path       string
	PerPage    int
	MaxPerPage int
}

// Addr returns host:port.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Table configures table controllers.
type Table struct {
	Route                string
	DebounceWait         time.Duration
	DefaultSortField     string
	DefaultSortDirection query.SortDirection
	Searchable           bool
	EnableDateRange      bool
}

// Navigator configures the HTTP navigator.
type Navigator struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	Breaker  bool
}

// LoadConfig loads the configuration from the file at configPath, or from
// datatable.{yaml,json,toml} in the usual places when configPath is empty.
// A missing default file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("datatable")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.datatable")
		}
		v.AddConfigPath("/etc/datatable")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	dir, err := query.ParseSortDirection(v.GetString("table.default_sort_direction"))
	if err != nil {
		return nil, fmt.Errorf("table.default_sort_direction: %w", err)
	}

	return &Config{
		AppName: orDefault(v, "app_name", "datatable", v.GetString),
		RunMode: orDefault(v, "run_mode", "release", v.GetString),
		Server: &Server{
			Host:       orDefault(v, "server.host", "127.0.0.1", v.GetString),
			Port:       orDefault(v, "server.port", 8080, v.GetInt),
			Router:     orDefault(v, "server.router", "gin", v.GetString),
			Route:      orDefault(v, "server.route", "users.index", v.GetString),
			Path:       orDefault(v, "server.path", "/api/users", v.GetString),
			PerPage:    orDefault(v, "server.per_page", 10, v.GetInt),
			MaxPerPage: orDefault(v, "server.max_per_page", 100, v.GetInt),
		},
		Table: &Table{
			Route:                orDefault(v, "table.route", "users.index", v.GetString),
			DebounceWait:         orDefault(v, "table.debounce_wait", 300*time.Millisecond, v.GetDuration),
			DefaultSortField:     v.GetString("table.default_sort_field"),
			DefaultSortDirection: dir,
			Searchable:           orDefault(v, "table.searchable", true, v.GetBool),
			EnableDateRange:      v.GetBool("table.enable_date_range"),
		},
		Navigator: &Navigator{
			BaseURL:  orDefault(v, "navigator.base_url", "http://127.0.0.1:8080", v.GetString),
			Timeout:  orDefault(v, "navigator.timeout", 10*time.Second, v.GetDuration),
			RetryMax: v.GetInt("navigator.retry_max"),
			Breaker:  orDefault(v, "navigator.breaker", true, v.GetBool),
		},
		Logger:   lc.GetConfig(v),
		Observes: getObservesConfig(v),
		Viper:    v,
	}, nil
}

// Watch reloads the configuration when its file changes and hands the new
// configuration to callback.
func (c *Config) Watch(callback func(*Config)) {
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		next, err := fromViper(c.Viper)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		callback(next)
	})
	c.Viper.WatchConfig()
}
