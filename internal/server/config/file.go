package config

import (
	"time"

	"github.com/dmitrijs2005/lightway/internal/filex"
	"github.com/dmitrijs2005/lightway/internal/flagx"
	"github.com/dmitrijs2005/lightway/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. Pointer
// fields distinguish "absent" from zero values, so a file may set only the
// keys it cares about.
type FileConfig struct {
	EndpointAddrGRPC *string `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      *string `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        *string `json:"secret_key" yaml:"secret_key"`
	EncryptionKey    *string `json:"encryption_key" yaml:"encryption_key"`

	IdentityLifetime        *timex.Duration `json:"identity_lifetime" yaml:"identity_lifetime"`
	IdentityCleanupInterval *timex.Duration `json:"identity_cleanup_interval" yaml:"identity_cleanup_interval"`
	VoidCleanupInterval     *timex.Duration `json:"void_cleanup_interval" yaml:"void_cleanup_interval"`
	OpenableCheckInterval   *timex.Duration `json:"openable_check_interval" yaml:"openable_check_interval"`

	MaxLetterLength   *int            `json:"max_letter_length" yaml:"max_letter_length"`
	MaxFutureDuration *timex.Duration `json:"max_future_duration" yaml:"max_future_duration"`
	MaxContentLength  *int            `json:"max_content_length" yaml:"max_content_length"`
	MaxApplause       *int            `json:"max_applause" yaml:"max_applause"`

	S3RootUser     *string `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword *string `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket       *string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       *string `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`

	LogBackend *string `json:"log_backend" yaml:"log_backend"`
	LogLevel   *string `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Without the flag
// nothing is loaded.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	fc := &FileConfig{}
	if err := filex.DecodeConfigFile(path, fc); err != nil {
		return err
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.SecretKey, fc.SecretKey)
	setString(&cfg.EncryptionKey, fc.EncryptionKey)

	setDuration(&cfg.IdentityLifetime, fc.IdentityLifetime)
	setDuration(&cfg.IdentityCleanupInterval, fc.IdentityCleanupInterval)
	setDuration(&cfg.VoidCleanupInterval, fc.VoidCleanupInterval)
	setDuration(&cfg.OpenableCheckInterval, fc.OpenableCheckInterval)

	setInt(&cfg.MaxLetterLength, fc.MaxLetterLength)
	setDuration(&cfg.MaxFutureDuration, fc.MaxFutureDuration)
	setInt(&cfg.MaxContentLength, fc.MaxContentLength)
	setInt(&cfg.MaxApplause, fc.MaxApplause)

	setString(&cfg.S3RootUser, fc.S3RootUser)
	setString(&cfg.S3RootPassword, fc.S3RootPassword)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)

	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.LogLevel, fc.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
