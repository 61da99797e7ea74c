package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "memory", cfg.BlobStore.Type)
	assert.Equal(t, DefaultBucket, cfg.BlobStore.Bucket)
	assert.Equal(t, DefaultBaseURL, cfg.BlobStore.BaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestRead_TaggedSections(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
port = "9000"

[storage]
driver = "sqlite"
dsn = "/tmp/birds.db"

[blobstore]
type = "s3"
bucket = "my-bucket"
base_url = "http://localhost:9001/"
endpoint = "http://localhost:9001"
use_path_style = true
`))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/birds.db", cfg.Storage.DSN)
	assert.Equal(t, "s3", cfg.BlobStore.Type)
	assert.True(t, cfg.BlobStore.UsePathStyle)
	// defaults no pisados
	assert.Equal(t, DefaultRegion, cfg.BlobStore.Region)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[blobstore]\nbucket = \"from-file\"\n"), 0o600))

	t.Setenv("S3_BUCKET", "from-env")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.BlobStore.Bucket)
	assert.Equal(t, ":7000", cfg.Addr())
}

func TestApplyEnv_DBDSNImpliesPostgres(t *testing.T) {
	cfg := Default()
	env := map[string]string{"DB_DSN": "postgres://u:p@localhost/birds"}
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@localhost/birds", cfg.Storage.DSN)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"unknown blobstore", func(c *Config) { c.BlobStore.Type = "gcs" }},
		{"base url without slash", func(c *Config) { c.BlobStore.BaseURL = "https://s3.amazonaws.com" }},
		{"odin half configured", func(c *Config) { c.Auth.OdinBaseURL = "https://odin" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_SQLiteDefaultPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "sqlite"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSQLiteDSN, cfg.Storage.DSN)
}
