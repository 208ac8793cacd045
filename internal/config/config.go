package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode   `yaml:"mode"`
	HTTPAddr  string `yaml:"http_addr"`
	PublicURL string `yaml:"public_url"`

	DBDriver string `yaml:"db_driver"` // sqlite|postgres
	DBDSN    string `yaml:"db_dsn"`

	BlobDriver   string `yaml:"blob_driver"`    // fs|s3
	BlobBasePath string `yaml:"blob_base_path"` // for fs
	S3Bucket     string `yaml:"s3_bucket"`
	S3Region     string `yaml:"s3_region"`
	S3Endpoint   string `yaml:"s3_endpoint"` // MinIO and friends

	// DocumentsDir holds the PDFs and manifest.json served to the viewer.
	DocumentsDir   string `yaml:"documents_dir"`
	WatchDocuments bool   `yaml:"watch_documents"`

	EnableLocalAuth bool   `yaml:"enable_local_auth"`
	AdminUser       string `yaml:"admin_user"`
	AdminPassHash   string `yaml:"admin_pass_hash"` // bcrypt; empty disables login
	AuthHMACSecret  string `yaml:"auth_hmac_secret"`

	CORSOriginsOnline  []string `yaml:"cors_origins_online"`
	CORSOriginsOffline []string `yaml:"cors_origins_offline"`

	TrialsBaseURL string        `yaml:"trials_base_url"`
	TrialsTimeout time.Duration `yaml:"trials_timeout"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json|console
}

// DevHMACSecret signs tokens in offline mode only. It is public, so online
// mode refuses to start with it.
const DevHMACSecret = "supersecret-dev-key"

func Defaults() Config {
	return Config{
		Mode:               ModeOffline,
		HTTPAddr:           ":8080",
		DBDriver:           "sqlite",
		BlobDriver:         "fs",
		BlobBasePath:       "./data",
		S3Region:           "us-east-1",
		DocumentsDir:       "./public/documents",
		WatchDocuments:     true,
		EnableLocalAuth:    true,
		AdminUser:          "admin",
		AuthHMACSecret:     DevHMACSecret,
		CORSOriginsOnline:  []string{"https://grayvisions.com"},
		CORSOriginsOffline: []string{"http://localhost:5173", "http://localhost:3000"},
		TrialsBaseURL:      "https://clinicaltrials.gov/api/v2",
		TrialsTimeout:      10 * time.Second,
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// FromEnv returns the defaults overlaid with environment variables.
func FromEnv() Config {
	c := Defaults()
	c.applyEnv()
	return c
}

// Load reads an optional YAML file, then lets the environment override it.
func Load(path string) (Config, error) {
	c := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.applyEnv()
	return c, c.Validate()
}

func (c *Config) applyEnv() {
	c.Mode = Mode(envOr("MODE", string(c.Mode)))
	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.PublicURL = envOr("PUBLIC_URL", c.PublicURL)
	c.DBDriver = envOr("DB_DRIVER", c.DBDriver)
	c.DBDSN = envOr("DB_DSN", c.DBDSN)
	c.BlobDriver = envOr("BLOB_DRIVER", c.BlobDriver)
	c.BlobBasePath = envOr("BLOB_BASE_PATH", c.BlobBasePath)
	c.S3Bucket = envOr("S3_BUCKET", c.S3Bucket)
	c.S3Region = envOr("S3_REGION", c.S3Region)
	c.S3Endpoint = envOr("S3_ENDPOINT", c.S3Endpoint)
	c.DocumentsDir = envOr("DOCUMENTS_DIR", c.DocumentsDir)
	c.WatchDocuments = envBool("WATCH_DOCUMENTS", c.WatchDocuments)
	c.EnableLocalAuth = envBool("ENABLE_LOCAL_AUTH", c.EnableLocalAuth)
	c.AdminUser = envOr("ADMIN_USER", c.AdminUser)
	c.AdminPassHash = envOr("ADMIN_PASS_HASH", c.AdminPassHash)
	c.AuthHMACSecret = envOr("AUTH_HMAC_SECRET", c.AuthHMACSecret)
	c.CORSOriginsOnline = csvOr("CORS_ORIGINS_ONLINE", c.CORSOriginsOnline)
	c.CORSOriginsOffline = csvOr("CORS_ORIGINS_OFFLINE", c.CORSOriginsOffline)
	c.TrialsBaseURL = envOr("TRIALS_BASE_URL", c.TrialsBaseURL)
	c.TrialsTimeout = envDuration("TRIALS_TIMEOUT", c.TrialsTimeout)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOr("LOG_FORMAT", c.LogFormat)
}

func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeOffline, ModeOnline:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported db driver %q", c.DBDriver))
	}
	switch c.BlobDriver {
	case "fs":
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("s3 blob driver needs s3_bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported blob driver %q", c.BlobDriver))
	}
	switch {
	case c.AuthHMACSecret == "":
		errs = append(errs, errors.New("auth_hmac_secret must be set"))
	case c.Mode == ModeOnline && c.AuthHMACSecret == DevHMACSecret:
		errs = append(errs, errors.New("online mode needs its own auth_hmac_secret"))
	}
	if c.TrialsTimeout <= 0 {
		errs = append(errs, errors.New("trials_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// CORSOrigins picks the origin list for the active mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
