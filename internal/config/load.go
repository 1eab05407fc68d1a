package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var defineFlagsOnce sync.Once

// Load loads configuration from multiple sources with the following precedence:
// 1. Explicit overrides (v.Set) – used only for the interactive password prompt
// 2. Command line flags
// 3. Environment variables
// 4. Config file
// 5. Default values
func Load() (*Config, error) {
	v := viper.New()

	// Defaults (lowest priority)
	setDefaults(v)

	// --- Flags ---
	defineFlags()
	if !pflag.Parsed() {
		pflag.Parse()
	}

	// --- Config file ---
	cfgPath, _ := pflag.CommandLine.GetString("config")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("landwand")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/landwand/")
		v.AddConfigPath("$HOME/.landwand")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgPath != "" {
			return nil, fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// --- Environment variables ---
	// Canonical keys: dot + snake_case. Env vars: LANDWAND_DATABASE_HOST.
	// The MYSQL_* names the deployment scripts already export are bound as
	// aliases.
	v.SetEnvPrefix("LANDWAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	// --- Flags binding (highest normal priority) ---
	bindChangedFlagsToViper(v)

	// --- Password from file (explicit override) ---
	if v.GetString("database.password") == "" && v.GetString("database.password_file") != "" {
		password, err := readSecretFile(v.GetString("database.password_file"))
		if err != nil {
			return nil, fmt.Errorf("failed to read database password file: %w", err)
		}
		v.Set("database.password", password)
	}

	// --- Interactive password prompt (explicit override) ---
	if v.GetBool("database.password_prompt") && v.GetString("database.password") == "" {
		password, err := promptPassword(v.GetString("database.user"))
		if err != nil {
			return nil, fmt.Errorf("failed to read database password: %w", err)
		}
		v.Set("database.password", password)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "auto")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.password_file", "")
	v.SetDefault("database.password_prompt", false)
	v.SetDefault("database.database", "landwand_db")
	v.SetDefault("database.pool.max_open", 10)
	v.SetDefault("database.pool.max_idle", 5)
	v.SetDefault("database.pool.max_lifetime", "5m")
	v.SetDefault("database.connection_timeout", "10s")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_enabled", true)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})

	v.SetDefault("observability.service_name", "landwand-api")
	v.SetDefault("observability.service_version", "")
	v.SetDefault("observability.metrics_enabled", true)
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "text")
}

// bindLegacyEnv keeps the MYSQL_* variables the original deployment
// tooling exports working alongside the prefixed names.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("database.host", "LANDWAND_DATABASE_HOST", "MYSQL_HOST")
	_ = v.BindEnv("database.port", "LANDWAND_DATABASE_PORT", "MYSQL_PORT")
	_ = v.BindEnv("database.user", "LANDWAND_DATABASE_USER", "MYSQL_USER")
	_ = v.BindEnv("database.password", "LANDWAND_DATABASE_PASSWORD", "MYSQL_PASSWORD")
	_ = v.BindEnv("database.database", "LANDWAND_DATABASE_DATABASE", "MYSQL_DB")
	_ = v.BindEnv("server.port", "LANDWAND_SERVER_PORT", "PORT")
}

func defineFlags() {
	defineFlagsOnce.Do(func() {
		pflag.String("config", "", "Path to config file")
		pflag.Int("port", 0, "HTTP server port")
		pflag.String("db-host", "", "Database host (or 'auto' for the device IP)")
		pflag.String("db-user", "", "Database user")
		pflag.String("db-name", "", "Database name")
		pflag.Bool("db-password-prompt", false, "Prompt for the database password")
	})
}

func bindChangedFlagsToViper(v *viper.Viper) {
	flagKeys := map[string]string{
		"port":               "server.port",
		"db-host":            "database.host",
		"db-user":            "database.user",
		"db-name":            "database.database",
		"db-password-prompt": "database.password_prompt",
	}
	pflag.CommandLine.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func promptPassword(user string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password prompt requires an interactive terminal")
	}
	fmt.Fprintf(os.Stderr, "Database password for %s: ", user)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
