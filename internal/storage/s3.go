package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

const (
	contentTypePDF    = "application/pdf"
	dispositionInline = "inline"
)

var _ ObjectStore = (*S3Store)(nil)

// S3Store keeps documents in an S3 bucket.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewS3Store loads the shared AWS configuration of profile. An empty profile
// uses the default credential chain.
func NewS3Store(ctx context.Context, bucket, region, profile string) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               file,
		ContentType:        aws.String(contentTypePDF),
		ContentDisposition: aws.String(dispositionInline),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logrus.Debugf("Uploaded %s to s3://%s/%s", localPath, s.bucket, key)
	return nil
}

func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s: %w", key, err)
}

// URLFor returns the virtual-hosted-style URL of key.
func (s *S3Store) URLFor(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
