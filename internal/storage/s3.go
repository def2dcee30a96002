package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Store struct {
	bucket       string
	publicPrefix string
	uploader     *s3manager.Uploader
}

func NewS3Store(bucket, region, publicPrefix string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	if publicPrefix == "" {
		publicPrefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucket, region)
	}
	if !strings.HasSuffix(publicPrefix, "/") {
		publicPrefix += "/"
	}

	return &S3Store{
		bucket:       bucket,
		publicPrefix: publicPrefix,
		uploader:     s3manager.NewUploader(sess),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return s.publicPrefix + publicPath(key), nil
}
