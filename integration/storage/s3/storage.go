package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client is the subset of the SDK client used by Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// Presigner signs GET requests for private buckets.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Storage resolves and uploads assets. It is safe for concurrent use.
type Storage struct {
	client         S3Client
	presigner      Presigner
	bucket         string
	region         string
	endpoint       string
	publicURL      string
	forcePathStyle bool
	presign        bool
	presignTTL     time.Duration
	uploadTimeout  time.Duration
	maxUploadSize  int64
	uploadPrefix   string
	now            func() time.Time
}

type Option func(*options)

type options struct {
	httpClient      *http.Client
	s3Client        S3Client
	presigner       Presigner
	s3ConfigOptions []func(*config.LoadOptions) error
	now             func() time.Time
}

// WithS3Client replaces the SDK client, mostly for tests.
func WithS3Client(client S3Client) Option {
	return func(o *options) { o.s3Client = client }
}

func WithPresigner(p Presigner) Option {
	return func(o *options) { o.presigner = p }
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

func WithS3ConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) { o.s3ConfigOptions = append(o.s3ConfigOptions, option) }
}

// WithClock sets the time source used for dated upload keys.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds a Storage from cfg. Credentials fall back to the default AWS
// chain when no static keys are configured.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	client, presigner := o.s3Client, o.presigner
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("s3: load AWS config: %w", err)
		}
		sdk := s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
		client = sdk
		if presigner == nil {
			presigner = s3aws.NewPresignClient(sdk)
		}
	}
	if cfg.Presign && presigner == nil {
		return nil, fmt.Errorf("%w: presigning needs a presigner", ErrInvalidConfig)
	}

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	maxSize := cfg.MaxUploadSize
	if maxSize <= 0 {
		maxSize = 50 << 20
	}
	prefix := strings.Trim(cfg.UploadPrefix, "/")
	if prefix == "" {
		prefix = "uploads"
	}

	return &Storage{
		client:         client,
		presigner:      presigner,
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		publicURL:      cfg.PublicURL,
		forcePathStyle: cfg.ForcePathStyle,
		presign:        cfg.Presign,
		presignTTL:     ttl,
		uploadTimeout:  cfg.UploadTimeout,
		maxUploadSize:  maxSize,
		uploadPrefix:   prefix,
		now:            o.now,
	}, nil
}

// Resolve turns an asset reference into a URL the browser can load.
func (s *Storage) Resolve(ctx context.Context, ref string) (string, error) {
	if isAbsolute(ref) {
		return ref, nil
	}
	key, err := cleanKey(ref)
	if err != nil {
		return "", err
	}
	if !s.presign {
		return s.URL(key), nil
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3aws.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", classifyS3Error(err, "presign "+key)
	}
	return req.URL, nil
}

// Put stores body under key.
func (s *Storage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}
	_, err = s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	return classifyS3Error(err, "upload "+key)
}

// Delete removes the object stored under key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyS3Error(err, "check "+key)
	}
	_, err = s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return classifyS3Error(err, "delete "+key)
}

// Healthcheck verifies the bucket is reachable with the configured credentials.
func (s *Storage) Healthcheck(ctx context.Context) error {
	_, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(".panelhouse-health"),
	})
	err = classifyS3Error(err, "healthcheck")
	if err == nil || isNotFound(err) {
		return nil
	}
	return err
}

// URL returns the public URL for key:
// the configured public URL, the custom endpoint, or the AWS hostname.
func (s *Storage) URL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if s.publicURL != "" {
		return strings.TrimSuffix(s.publicURL, "/") + "/" + key
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		scheme := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			scheme, endpoint = "http://", after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}
		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", scheme, endpoint, s.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", scheme, s.bucket, endpoint, key)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "data:")
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, "\\\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}
