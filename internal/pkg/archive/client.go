package archive

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

// objectAPI is the subset of the S3 client used by the archive.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Client stores raw webhook deliveries in an S3 compatible bucket.
type Client struct {
	api    objectAPI
	config config.ArchiveConfig
	newID  func() string
}

// NewClient creates the S3 client and checks the bucket. Outside of
// production a missing bucket is created.
func NewClient(ctx context.Context, cfg config.ArchiveConfig, appEnv string) (*Client, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("S3 archive is disabled")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible services (MinIO, Backblaze B2) need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := newClient(s3Client, cfg)
	if err := client.ensureBucket(ctx, appEnv); err != nil {
		return nil, fmt.Errorf("failed to connect to S3: %w", err)
	}

	log.Infof("[Archive] Initialized S3 archive for bucket: %s", cfg.BucketName)
	return client, nil
}

func newClient(api objectAPI, cfg config.ArchiveConfig) *Client {
	return &Client{api: api, config: cfg, newID: uuid.NewString}
}

func (c *Client) ensureBucket(ctx context.Context, appEnv string) error {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.BucketName),
	})
	if err == nil {
		return nil
	}
	if appEnv == "prod" {
		return fmt.Errorf("bucket %s not accessible: %w", c.config.BucketName, err)
	}

	log.Warnf("[Archive] Bucket %s not found, attempting to create it", c.config.BucketName)
	input := &s3.CreateBucketInput{
		Bucket: aws.String(c.config.BucketName),
	}
	// us-east-1 and S3-compatible endpoints take no location constraint
	if c.config.EndpointURL == "" && c.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.config.Region),
		}
	}
	if _, err := c.api.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.config.BucketName, err)
	}
	return nil
}

// Archive uploads the raw payload of a delivery.
func (c *Client) Archive(ctx context.Context, d webhook.Delivery) error {
	key := ObjectKey(d, c.newID())
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(d.Payload),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(d.Payload))),
		Metadata: map[string]string{
			"provider":    d.Provider,
			"delivery-id": d.ID,
			"verified":    strconv.FormatBool(d.Verified),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	log.Debugf("[Archive] Stored s3://%s/%s", c.config.BucketName, key)
	return nil
}

// ObjectKey returns webhooks/<provider>/YYYY/MM/DD/<delivery>-<id>.json.
func ObjectKey(d webhook.Delivery, id string) string {
	return fmt.Sprintf("webhooks/%s/%04d/%02d/%02d/%s-%s.json",
		d.Provider,
		d.ReceivedAt.Year(), int(d.ReceivedAt.Month()), d.ReceivedAt.Day(),
		sanitize(d.ID), id)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
