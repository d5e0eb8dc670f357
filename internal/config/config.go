// Package config loads smartlist settings from config.yaml and the
// environment using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/idilsaglam/smartlist/internal/gate"
	"github.com/idilsaglam/smartlist/internal/store"
	"github.com/idilsaglam/smartlist/internal/totals"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// DefaultConfigDir is relative to the working directory.
	DefaultConfigDir = ".smartlist"
	// EnvConfigDir overrides the config directory.
	EnvConfigDir = "SMARTLIST_CONFIG_DIR"
	envPrefix    = "SMARTLIST"
)

// Config keys.
const (
	KeyBackend         = "backend"
	KeyDataDir         = "data_dir"
	KeySubtotalRule    = "subtotal_rule"
	KeyIDScheme        = "id_scheme"
	KeyTheme           = "theme"
	KeyGatePaths       = "gate.protected_paths"
	KeyGatePassword    = "gate.password"
	KeyGateSessionTime = "gate.session_duration"
)

// defaultConfigYAML is written on first run.
const defaultConfigYAML = `# smartlist configuration

# Storage backend: json | sqlite | memory
backend: json

# Data directory (default: the config directory)
# data_dir:

# Which items count toward the subtotal: all | completed
subtotal_rule: all

# New item ids: timestamp | uuid
id_scheme: timestamp

# classic | neon | mono
theme: classic

# Password overlay for selected paths. Not a security boundary.
gate:
  protected_paths: ["/secret", "/members", "/dashboard"]
  password: changeme123
  session_duration: 24h
`

// ErrInvalid wraps validation failures.
var ErrInvalid = errors.New("invalid config")

// Config is the resolved configuration.
type Config struct {
	Dir          string
	Backend      string
	DataDir      string
	SubtotalRule totals.Rule
	IDScheme     string
	Theme        string
	Gate         gate.Config
}

// ResolveDir picks the config directory: flag, then env, then default.
func ResolveDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvConfigDir); v != "" {
		return v
	}
	return DefaultConfigDir
}

// Load reads config.yaml from dir, creating the directory and a default file
// on first run. SMARTLIST_* environment variables override file values
// (SMARTLIST_GATE_PASSWORD for gate.password).
func Load(dir string) (Config, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v, dir)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, store.BackendJSON)
	v.SetDefault(KeySubtotalRule, "all")
	v.SetDefault(KeyIDScheme, "timestamp")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyGatePaths, gate.DefaultProtectedPaths)
	v.SetDefault(KeyGatePassword, gate.DefaultPassword)
	v.SetDefault(KeyGateSessionTime, gate.DefaultSessionDuration)
}

func decode(v *viper.Viper, dir string) (Config, error) {
	rule, err := totals.ParseRule(v.GetString(KeySubtotalRule))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	scheme := strings.ToLower(v.GetString(KeyIDScheme))
	if scheme != "timestamp" && scheme != "uuid" {
		return Config{}, fmt.Errorf("%w: unknown id_scheme %q", ErrInvalid, scheme)
	}
	dur := v.GetDuration(KeyGateSessionTime)
	if dur <= 0 {
		return Config{}, fmt.Errorf("%w: gate.session_duration must be positive", ErrInvalid)
	}

	dataDir := v.GetString(KeyDataDir)
	if dataDir == "" {
		dataDir = dir
	}
	return Config{
		Dir:          dir,
		Backend:      strings.ToLower(v.GetString(KeyBackend)),
		DataDir:      dataDir,
		SubtotalRule: rule,
		IDScheme:     scheme,
		Theme:        v.GetString(KeyTheme),
		Gate: gate.Config{
			ProtectedPaths:  v.GetStringSlice(KeyGatePaths),
			Password:        v.GetString(KeyGatePassword),
			SessionDuration: dur,
		},
	}, nil
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
