package config

import (
	"errors"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Configuration keys. Each is also read from MIGRATION_<KEY> with dashes
// replaced by underscores.
const (
	KeyData          = "data"
	KeyDocuments     = "documents"
	KeyDatabase      = "db"
	KeyUpload        = "upload"
	KeyBucket        = "bucket"
	KeyRegion        = "region"
	KeyProfile       = "profile"
	KeyStorageDir    = "storage-dir"
	KeyUploadWorkers = "upload-workers"
	KeyLogDir        = "log-dir"
	KeyLogLevel      = "log-level"
	KeyManifestDir   = "manifest-dir"
	KeyManifest      = "manifest"
	KeyCompression   = "compression"
	KeyInitSchema    = "init-schema"

	EnvPrefix = "MIGRATION"
)

var (
	// ErrMissingDataDir is returned when no spreadsheet directory is configured.
	ErrMissingDataDir = errors.New("data directory is required")
	// ErrMissingDatabase is returned when no target database is configured.
	ErrMissingDatabase = errors.New("database url is required")
	// ErrMissingDocumentsDir is returned when uploading without a documents directory.
	ErrMissingDocumentsDir = errors.New("documents directory is required to upload")
	// ErrMissingStorage is returned when uploading without a bucket or storage directory.
	ErrMissingStorage = errors.New("bucket or storage directory is required to upload")
)

type Config struct {
	DataDir       string
	DocumentsDir  string
	DatabaseURL   string
	Upload        bool
	Bucket        string
	Region        string
	Profile       string
	StorageDir    string // local object store; takes precedence over Bucket
	UploadWorkers int
	LogDir        string
	LogLevel      string
	ManifestDir   string
	Manifest      string // manifest of an earlier run, read by migrate validate
	Compression   string
	InitSchema    bool
}

// SetDefaults registers defaults and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBucket, "inquests-ca-resources")
	v.SetDefault(KeyRegion, "us-east-1")
	v.SetDefault(KeyProfile, "migration")
	v.SetDefault(KeyUploadWorkers, 4)
	v.SetDefault(KeyLogDir, "./logs")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCompression, "gzip")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadConfig reads the configuration from the global viper instance.
func LoadConfig() *Config {
	return Load(viper.GetViper())
}

func Load(v *viper.Viper) *Config {
	return &Config{
		DataDir:       v.GetString(KeyData),
		DocumentsDir:  v.GetString(KeyDocuments),
		DatabaseURL:   v.GetString(KeyDatabase),
		Upload:        v.GetBool(KeyUpload),
		Bucket:        v.GetString(KeyBucket),
		Region:        v.GetString(KeyRegion),
		Profile:       v.GetString(KeyProfile),
		StorageDir:    v.GetString(KeyStorageDir),
		UploadWorkers: v.GetInt(KeyUploadWorkers),
		LogDir:        v.GetString(KeyLogDir),
		LogLevel:      v.GetString(KeyLogLevel),
		ManifestDir:   v.GetString(KeyManifestDir),
		Manifest:      v.GetString(KeyManifest),
		Compression:   v.GetString(KeyCompression),
		InitSchema:    v.GetBool(KeyInitSchema),
	}
}

// Validate checks the settings a migration run needs.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrMissingDataDir
	}
	if c.DatabaseURL == "" {
		return ErrMissingDatabase
	}
	if c.Upload {
		if c.DocumentsDir == "" {
			return ErrMissingDocumentsDir
		}
		if c.Bucket == "" && c.StorageDir == "" {
			return ErrMissingStorage
		}
	}
	if c.UploadWorkers < 1 {
		c.UploadWorkers = 1
	}
	return nil
}
