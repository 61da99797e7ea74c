// Package config carga la configuración del servicio: archivo TOML opcional
// y después overrides por variables de entorno.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPort      = "8080"
	DefaultBaseURL   = "https://s3.us-east-1.amazonaws.com/"
	DefaultBucket    = "catcollector-avatar-946"
	DefaultRegion    = "us-east-1"
	DefaultSQLiteDSN = "bird-collector.db"
)

type Config struct {
	Port      string          `toml:"port"`
	Log       LogConfig       `toml:"log"`
	Storage   StorageConfig   `toml:"storage"`
	BlobStore BlobStoreConfig `toml:"blobstore"`
	Auth      AuthConfig      `toml:"auth"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json
	App    string `toml:"app"`
}

// StorageConfig: Driver decide qué campos aplican.
type StorageConfig struct {
	Driver string `toml:"driver"`        // "memory", "postgres" o "sqlite"
	DSN    string `toml:"dsn,omitempty"` // postgres: URL; sqlite: path del archivo
}

// BlobStoreConfig: Type decide qué campos aplican.
type BlobStoreConfig struct {
	Type    string `toml:"type"` // "memory" o "s3"
	Bucket  string `toml:"bucket"`
	BaseURL string `toml:"base_url"`

	// solo type=s3
	Region          string `toml:"region,omitempty"`
	Endpoint        string `toml:"endpoint,omitempty"`
	UsePathStyle    bool   `toml:"use_path_style,omitempty"`
	AccessKeyID     string `toml:"access_key_id,omitempty"`
	SecretAccessKey string `toml:"secret_access_key,omitempty"`
}

// AuthConfig vacío => modo dev (header X-Debug-User-ID).
type AuthConfig struct {
	OdinBaseURL string `toml:"odin_base_url,omitempty"`
	OdinAPIKey  string `toml:"odin_api_key,omitempty"`
}

func Default() *Config {
	return &Config{
		Port: DefaultPort,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "bird-collector",
		},
		Storage: StorageConfig{Driver: "memory"},
		BlobStore: BlobStoreConfig{
			Type:    "memory",
			Bucket:  DefaultBucket,
			BaseURL: DefaultBaseURL,
			Region:  DefaultRegion,
		},
	}
}

// Read decodifica TOML sobre los defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Load lee path (si no está vacío), aplica env y valida.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		cfg, err = Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set("PORT", &c.Port)
	set("LOG_LEVEL", &c.Log.Level)
	set("LOG_FORMAT", &c.Log.Format)
	set("APP_NAME", &c.Log.App)

	set("STORAGE_DRIVER", &c.Storage.Driver)
	if v, ok := lookup("DB_DSN"); ok && strings.TrimSpace(v) != "" {
		c.Storage.DSN = strings.TrimSpace(v)
		// compat: DB_DSN sin driver explícito => postgres
		if _, explicit := lookup("STORAGE_DRIVER"); !explicit && c.Storage.Driver == "memory" {
			c.Storage.Driver = "postgres"
		}
	}

	set("BLOBSTORE_TYPE", &c.BlobStore.Type)
	set("S3_BUCKET", &c.BlobStore.Bucket)
	set("S3_BASE_URL", &c.BlobStore.BaseURL)
	set("AWS_REGION", &c.BlobStore.Region)
	set("S3_ENDPOINT", &c.BlobStore.Endpoint)
	set("AWS_ACCESS_KEY_ID", &c.BlobStore.AccessKeyID)
	set("AWS_SECRET_ACCESS_KEY", &c.BlobStore.SecretAccessKey)
	if v, ok := lookup("S3_USE_PATH_STYLE"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.BlobStore.UsePathStyle = b
		}
	}

	set("ODIN_BASE_URL", &c.Auth.OdinBaseURL)
	set("ODIN_API_KEY", &c.Auth.OdinAPIKey)
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage driver postgres requires dsn")
		}
	case "sqlite":
		if c.Storage.DSN == "" {
			c.Storage.DSN = DefaultSQLiteDSN
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.BlobStore.Type {
	case "memory", "s3":
	default:
		return fmt.Errorf("unknown blobstore type %q", c.BlobStore.Type)
	}
	if strings.TrimSpace(c.BlobStore.Bucket) == "" {
		return fmt.Errorf("blobstore bucket required")
	}
	if !strings.HasSuffix(c.BlobStore.BaseURL, "/") {
		return fmt.Errorf("blobstore base_url must end with /")
	}

	if (c.Auth.OdinBaseURL == "") != (c.Auth.OdinAPIKey == "") {
		return fmt.Errorf("auth requires both odin_base_url and odin_api_key")
	}
	return nil
}

// Addr es la dirección de escucha (":8080").
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
