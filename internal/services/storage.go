package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	appconfig "job-board-backend/internal/config"
	"job-board-backend/internal/metrics"
	"job-board-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Upload folders in the bucket
const (
	FolderPhotos  = "photos"
	FolderLogos   = "logos"
	FolderResumes = "resumes"
)

// Upload is a file received with a request
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// FileUploader stores a file and describes where it ended up
type FileUploader interface {
	Upload(ctx context.Context, folder string, file *Upload) (*models.FileInfo, error)
}

// S3Uploader stores uploads in an S3 bucket
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	publicURL string
	pathStyle bool
	now       func() time.Time
}

// NewS3Uploader creates an uploader from the AWS section of the config.
// Static credentials are used when given, otherwise the default chain.
func NewS3Uploader(ctx context.Context, cfg appconfig.AWSConfig) (*S3Uploader, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		pathStyle: cfg.UsePathStyle,
		now:       time.Now,
	}, nil
}

// Upload puts the file under folder with a unique name
func (u *S3Uploader) Upload(ctx context.Context, folder string, file *Upload) (*models.FileInfo, error) {
	key := folder + "/" + u.objectName(file.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file.Body,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		metrics.FileUploadsTotal.WithLabelValues(folder, "error").Inc()
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	metrics.FileUploadsTotal.WithLabelValues(folder, "success").Inc()

	log.Debug().Str("bucket", u.bucket).Str("key", key).Msg("File uploaded")

	return &models.FileInfo{
		URL:      u.objectURL(key),
		Filename: key,
	}, nil
}

// objectName builds <unix millis>-<random>.<ext> from the client file name
func (u *S3Uploader) objectName(original string) string {
	ext := strings.ToLower(strings.Join(strings.Fields(filepath.Ext(original)), ""))
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", u.now().UnixMilli(), random, ext)
}

func (u *S3Uploader) objectURL(key string) string {
	switch {
	case u.publicURL != "":
		return u.publicURL + "/" + key
	case u.endpoint != "" && u.pathStyle:
		return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key)
	case u.endpoint != "":
		scheme, host, found := strings.Cut(u.endpoint, "://")
		if !found {
			return fmt.Sprintf("https://%s.%s/%s", u.bucket, u.endpoint, key)
		}
		return fmt.Sprintf("%s://%s.%s/%s", scheme, u.bucket, host, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	}
}
