package s3

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"file-drive-api/config"
	"file-drive-api/internal/domain/file"
)

// KeyPrefix marks object keys issued by this service.
const KeyPrefix = "uploads/"

type Client struct {
	logger *zap.Logger
	// internal talks to storage from inside the deployment; public signs URLs
	// the browser can reach.
	internal *minio.Client
	public   *minio.Client
	breaker  *gobreaker.CircuitBreaker

	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	c, err := newClient(logger, cfg)
	if err != nil {
		return nil, err
	}

	exists, err := c.internal.BucketExists(ctx, c.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", c.bucket, err)
	}
	if !exists {
		if err = c.internal.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", c.bucket, err)
		}
		logger.Info("bucket created", zap.String("bucket", c.bucket))
	}

	return c, nil
}

func newClient(logger *zap.Logger, cfg config.S3) (*Client, error) {
	opts := func() *minio.Options {
		return &minio.Options{
			Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			Secure:       cfg.UseSSL,
			Region:       cfg.Region,
			BucketLookup: minio.BucketLookupPath,
		}
	}

	internal, err := minio.New(cfg.Endpoint, opts())
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	public, err := minio.New(cfg.PublicEndpoint, opts())
	if err != nil {
		return nil, fmt.Errorf("create public storage client: %w", err)
	}

	return &Client{
		logger:   logger,
		internal: internal,
		public:   public,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "storage",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("circuit_breaker", name),
					zap.String("from_state", from.String()),
					zap.String("to_state", to.String()),
				)
			},
		}),
		bucket:      cfg.BucketUploads,
		uploadTTL:   cfg.UploadURLTTL,
		downloadTTL: cfg.DownloadURLTTL,
		now:         time.Now,
	}, nil
}

// NewObjectKey returns a fresh key of the form uploads/YYYY/MM/DD/<uuid>.
func (c *Client) NewObjectKey() string {
	return KeyPrefix + path.Join(c.now().UTC().Format("2006/01/02"), uuid.NewString())
}

func IsIssuedKey(key string) bool {
	return strings.HasPrefix(key, KeyPrefix) && len(key) > len(KeyPrefix) && !strings.Contains(key, "..")
}

func (c *Client) PresignUpload(ctx context.Context) (*file.UploadTicket, error) {
	key := c.NewObjectKey()
	expiresAt := c.now().Add(c.uploadTTL)

	u, err := c.breaker.Execute(func() (interface{}, error) {
		return c.public.PresignedPutObject(ctx, c.bucket, key, c.uploadTTL)
	})
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &file.UploadTicket{
		URL:       fmt.Sprint(u),
		StorageID: key,
		ExpiresAt: expiresAt,
	}, nil
}

func (c *Client) PresignDownload(ctx context.Context, key string) (string, error) {
	u, err := c.breaker.Execute(func() (interface{}, error) {
		return c.public.PresignedGetObject(ctx, c.bucket, key, c.downloadTTL, nil)
	})
	if err != nil {
		return "", fmt.Errorf("presign download %s: %w", key, err)
	}
	return fmt.Sprint(u), nil
}

func (c *Client) RemoveObject(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.internal.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (c *Client) GetBucket() string { return c.bucket }
