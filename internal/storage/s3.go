package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/VelvetStudioBR/studio-booking/internal/config"
)

// Uploader stores receipt and design images in the studio's bucket.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewUploader(cfg *config.Config) *Uploader {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &Uploader{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

// Upload writes the object and returns its public URL.
func (u *Uploader) Upload(
	ctx context.Context,
	key string,
	body []byte,
	contentType string,
) (string, error) {

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"https://%s.s3.%s.amazonaws.com/%s",
		u.bucket, u.region, key,
	), nil
}
