package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     3306,
			User:     "landwand",
			Password: "s3cret",
			Database: "landwand_db",
			Pool:     PoolConfig{MaxOpen: 10, MaxIdle: 5, MaxLifetime: 5 * time.Minute},
		},
		Server: ServerConfig{Port: 5000},
	}
}

func TestDSN(t *testing.T) {
	cfg := baseConfig()
	assert.Equal(t,
		"landwand:s3cret@tcp(db.internal:3306)/landwand_db?parseTime=true&loc=UTC",
		cfg.Database.DSN())
}

func TestEffectiveHost(t *testing.T) {
	d := DatabaseConfig{Host: "db.internal"}
	assert.Equal(t, "db.internal", d.EffectiveHost())

	d.Host = "  db.internal  "
	assert.Equal(t, "db.internal", d.EffectiveHost())
}

func TestEffectiveHost_AutoResolvesToDeviceIP(t *testing.T) {
	for _, host := range []string{"auto", "AUTO", ""} {
		d := DatabaseConfig{Host: host}
		got := d.EffectiveHost()
		assert.NotEmpty(t, got)
		assert.NotEqual(t, host, got)
	}
}

func TestValidate_CleanConfig(t *testing.T) {
	result := baseConfig().Validate()
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Warnings)
}

func TestValidate_Errors(t *testing.T) {
	cfg := baseConfig()
	cfg.Server.Port = 0
	cfg.Database.Port = 70000
	cfg.Database.User = ""
	cfg.Database.Database = ""

	result := cfg.Validate()
	require.True(t, result.HasErrors())
	assert.Len(t, result.Errors, 4)

	fields := make([]string, len(result.Errors))
	for i, issue := range result.Errors {
		fields[i] = issue.Field
	}
	assert.Contains(t, fields, "server.port")
	assert.Contains(t, fields, "database.port")
	assert.Contains(t, fields, "database.user")
	assert.Contains(t, fields, "database.database")
}

func TestValidate_Warnings(t *testing.T) {
	cfg := baseConfig()
	cfg.Database.Password = ""
	cfg.Database.Pool.MaxIdle = 20
	cfg.Observability.Logging.Level = "verbose"

	result := cfg.Validate()
	assert.False(t, result.HasErrors())
	assert.Len(t, result.Warnings, 3)
}

func TestValidate_PasswordPromptSuppressesWarning(t *testing.T) {
	cfg := baseConfig()
	cfg.Database.Password = ""
	cfg.Database.PasswordPrompt = true

	result := cfg.Validate()
	assert.Empty(t, result.Warnings)
}

func TestReadSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(path, []byte("  s3cret\n"), 0o600))

	got, err := readSecretFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestReadSecretFile_Missing(t *testing.T) {
	_, err := readSecretFile(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
