package s3

import "time"

// Config is loaded from S3_* environment variables. An empty bucket disables S3.
type Config struct {
	Bucket         string        `env:"S3_BUCKET"`
	Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string        `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string        `env:"S3_SECRET_KEY"`
	Endpoint       string        `env:"S3_ENDPOINT"`   // MinIO, Spaces, R2
	PublicURL      string        `env:"S3_PUBLIC_URL"` // CDN in front of the bucket
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	Presign        bool          `env:"S3_PRESIGN" envDefault:"false"`
	PresignTTL     time.Duration `env:"S3_PRESIGN_TTL" envDefault:"15m"`
	UploadTimeout  time.Duration `env:"S3_UPLOAD_TIMEOUT" envDefault:"60s"`
	MaxUploadSize  int64         `env:"S3_MAX_UPLOAD_SIZE" envDefault:"52428800"`
	UploadPrefix   string        `env:"S3_UPLOAD_PREFIX" envDefault:"uploads"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool { return c.Bucket != "" }
