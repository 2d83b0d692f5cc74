package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"nightking/pkg/logging"
)

const (
	userConfigDir  = ".config/nightking"
	configFileName = "config.yaml"
	envPrefix      = "NIGHTKING"
)

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"project":                  "project",
	"subscription-name":        "subscription",
	"poll-interval":            "pollInterval",
	"max-wait":                 "maxWait",
	"credentials-file":         "credentialsFile",
	"shutdown-grace":           "shutdownGrace",
	"max-outstanding-messages": "receive.maxOutstanding",
	"receive-goroutines":       "receive.goroutines",
	"metrics-address":          "metrics.address",
	"log-level":                "log.level",
	"log-format":               "log.format",
}

// Loader layers defaults, a config file, the environment and flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader seeded with the defaults and bound to the
// NIGHTKING_* environment.
func NewLoader() *Loader {
	v := viper.New()

	defaults := GetDefaultConfig()
	v.SetDefault("project", defaults.Project)
	v.SetDefault("subscription", defaults.Subscription)
	v.SetDefault("pollInterval", defaults.PollInterval)
	v.SetDefault("maxWait", defaults.MaxWait)
	v.SetDefault("credentialsFile", defaults.CredentialsFile)
	v.SetDefault("shutdownGrace", defaults.ShutdownGrace)
	v.SetDefault("receive.maxOutstanding", defaults.Receive.MaxOutstanding)
	v.SetDefault("receive.goroutines", defaults.Receive.Goroutines)
	v.SetDefault("metrics.address", defaults.Metrics.Address)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlags lets the flags in fs that nightking knows about override every
// other source when they are set explicitly.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads configFile, or the default user config file if configFile is
// empty and the default exists, and returns the merged configuration.
// The result is not validated.
func (l *Loader) Load(configFile string) (NightkingConfig, error) {
	if configFile == "" {
		configFile = defaultConfigFile()
	} else if _, err := os.Stat(configFile); err != nil {
		return NightkingConfig{}, fmt.Errorf("config file %s: %w", configFile, err)
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			return NightkingConfig{}, fmt.Errorf("error loading config from %s: %w", configFile, err)
		}
		logging.Info("Config", "Loaded configuration from %s", configFile)
	} else {
		logging.Debug("Config", "No config file found, using defaults, environment and flags")
	}

	var cfg NightkingConfig
	if err := l.v.Unmarshal(&cfg); err != nil {
		return NightkingConfig{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}

// defaultConfigFile returns ~/.config/nightking/config.yaml if it exists.
func defaultConfigFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(homeDir, userConfigDir, configFileName)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("Config", "Cannot read %s: %v", path, err)
		}
		return ""
	}
	return path
}

// yamlView renders durations as strings instead of nanoseconds.
type yamlView struct {
	Project         string        `yaml:"project"`
	Subscription    string        `yaml:"subscription"`
	PollInterval    string        `yaml:"pollInterval"`
	MaxWait         string        `yaml:"maxWait"`
	CredentialsFile string        `yaml:"credentialsFile,omitempty"`
	ShutdownGrace   string        `yaml:"shutdownGrace"`
	Receive         ReceiveConfig `yaml:"receive"`
	Metrics         MetricsConfig `yaml:"metrics"`
	Log             LogConfig     `yaml:"log"`
}

// MarshalYAML implements yaml.Marshaler.
func (c NightkingConfig) MarshalYAML() (interface{}, error) {
	return yamlView{
		Project:         c.Project,
		Subscription:    c.Subscription,
		PollInterval:    c.PollInterval.String(),
		MaxWait:         c.MaxWait.String(),
		CredentialsFile: c.CredentialsFile,
		ShutdownGrace:   c.ShutdownGrace.String(),
		Receive:         c.Receive,
		Metrics:         c.Metrics,
		Log:             c.Log,
	}, nil
}

// Marshal renders cfg as YAML in the config file format.
func Marshal(cfg NightkingConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
