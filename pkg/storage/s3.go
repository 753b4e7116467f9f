package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type S3Options struct {
	AccessKey       string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string // for S3 compatible providers such as R2
	PublicURL       string // defaults to the virtual-hosted AWS URL
}

type S3 struct {
	c         *s3.Client
	uploader  *manager.Uploader
	bucket    *string
	publicURL string
}

func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.AccessKey,
			o.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(o.Bucket)

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		so.Region = o.Region
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", o.Bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	publicURL := o.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.Bucket, o.Region)
	}

	return &S3{
		c:         client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// NewR2 talks to a Cloudflare R2 bucket through its S3 API
func NewR2(ctx context.Context, accountID, accessKeyID, secretAccessKey, bucket, publicURL string) (*S3, error) {
	return NewS3(ctx, S3Options{
		AccessKey:       accessKeyID,
		SecretAccessKey: secretAccessKey,
		Region:          "auto",
		Bucket:          bucket,
		Endpoint:        fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		PublicURL:       publicURL,
	})
}

func (s *S3) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      s.bucket,
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s, %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
