// Package config loads service configuration from defaults, an optional
// YAML file and VYAKARNI_-prefixed environment variables, with hot reload
// of the config file.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`
	Debug    bool   `mapstructure:"debug"`

	RulesFile string `mapstructure:"rules_file"` // optional YAML rule table

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	AI struct {
		APIKey     string        `mapstructure:"api_key"`
		Model      string        `mapstructure:"model"`
		BaseURL    string        `mapstructure:"base_url"`
		Timeout    time.Duration `mapstructure:"timeout"`
		MaxRetries int           `mapstructure:"max_retries"`
	} `mapstructure:"ai"`

	Pipeline struct {
		// Stage plan as an ordered list of "dictionary" / "external".
		Stages              []string `mapstructure:"stages"`
		MaxDictionaryPasses int      `mapstructure:"max_dictionary_passes"`
	} `mapstructure:"pipeline"`
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads the initial configuration. cfgFile may be empty, in
// which case ./config.yaml is used if present.
func NewManager(cfgFile string) (*Manager, error) {
	m := &Manager{}

	viper.SetDefault("http_addr", ":8080")
	viper.SetDefault("debug", false)
	viper.SetDefault("rules_file", "")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("ai.model", "")
	viper.SetDefault("ai.timeout", 60*time.Second)
	viper.SetDefault("ai.max_retries", 3)
	viper.SetDefault("pipeline.stages", []string{"dictionary", "external", "dictionary", "dictionary"})
	viper.SetDefault("pipeline.max_dictionary_passes", 5)

	viper.SetEnvPrefix("VYAKARNI")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.vyakarni")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

func load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback invoked after a successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch enables hot reload of the config file.
func (m *Manager) Watch() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := load()
		if err != nil {
			return
		}
		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()
		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}
