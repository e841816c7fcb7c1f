// Package config loads the photoset-sync configuration from its config file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/yuya-takeyama/photoset-sync/pkg/s3client"
)

// FileName is the name of the config file in the home directory.
const FileName = ".photoset-sync.conf"

const envPrefix = "PHOTOSET_SYNC_"

// ErrNotFound is returned by Load when the config file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config holds the settings of the remote photoset store. Every field is
// read from PHOTOSET_SYNC_<NAME>, with the process environment taking
// precedence over the config file.
type Config struct {
	// Remote is the location of the store, s3://bucket/prefix.
	Remote string `env:"REMOTE"`

	Region  string `env:"REGION"`
	Profile string `env:"PROFILE"`

	// Endpoint overrides the S3 endpoint, for S3 compatible services.
	Endpoint  string `env:"ENDPOINT"`
	PathStyle bool   `env:"PATH_STYLE" envDefault:"false"`

	// PresignTTL is how long download URLs handed out by the store stay valid.
	PresignTTL time.Duration `env:"PRESIGN_TTL" envDefault:"1h"`
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"5"`

	// LogFormat is "console" or "json".
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Bucket and Prefix are derived from Remote.
	Bucket string
	Prefix string
}

// DefaultPath returns ~/.photoset-sync.conf, or the bare file name when the
// home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads the KEY=VALUE config file at path and overlays the process
// environment on top of it.
func Load(path string) (*Config, error) {
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	merged := fileEnv
	for k, v := range env.ToMap(os.Environ()) {
		merged[k] = v
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{
		Environment: merged,
		Prefix:      envPrefix,
	}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Remote == "" {
		return fmt.Errorf("%sREMOTE is required", envPrefix)
	}

	bucket, prefix, err := s3client.ParseS3URI(c.Remote)
	if err != nil {
		return fmt.Errorf("%sREMOTE: %w", envPrefix, err)
	}
	c.Bucket = bucket
	c.Prefix = prefix

	if c.PresignTTL <= 0 {
		return fmt.Errorf("%sPRESIGN_TTL must be positive", envPrefix)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("%sMAX_RETRIES must not be negative", envPrefix)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%sLOG_FORMAT must be console or json, got %q", envPrefix, c.LogFormat)
	}

	return nil
}

// SetupHelp explains how to create the config file at path.
func SetupHelp(program, path string) string {
	return fmt.Sprintf(`%[1]s: Configuration file %[2]s not found.

1. Create a bucket (or pick a prefix in an existing one) to hold the photosets.

2. Create %[2]s in this format:
%[3]sREMOTE=s3://<bucket>/<prefix>
%[3]sREGION=<region>
# optional
%[3]sPROFILE=<shared config profile>
%[3]sENDPOINT=<endpoint of an S3 compatible service>
%[3]sPATH_STYLE=true

3. Make sure the credentials of the profile may list, read, write and
   delete objects under the prefix.

Every key can also be set in the environment, which takes precedence
over the file.
`, program, path, envPrefix)
}
