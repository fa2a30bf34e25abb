package facades

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}
)

// MediaS3Facade uploads staged local files to an S3-compatible object store
// and returns durable public URLs.
type MediaS3Facade struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewMediaS3Facade creates a facade bound to the given bucket. endpoint is
// the S3 API address, publicBaseURL the address media URLs are built from.
func NewMediaS3Facade(ctx context.Context, endpoint, publicBaseURL, region, bucket, accessKey, secretKey string) (*MediaS3Facade, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaS3Facade{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// Upload pushes the file at localPath to the bucket and returns its public
// URL. The staged file is removed whether the upload succeeds or not, it only
// exists to bridge the multipart request and the object store.
func (f *MediaS3Facade) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		logger.Log.Errorw("failed to open staged file", "path", localPath, "error", err)
		return "", err
	}

	ext := filepath.Ext(localPath)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storageKey(ext)
	_, putErr := putObject(f.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})

	file.Close()
	if err := os.Remove(localPath); err != nil {
		logger.Log.Warnw("failed to remove staged file", "path", localPath, "error", err)
	}

	if putErr != nil {
		logger.Log.Errorw("failed to upload media to object store", "key", key, "error", putErr)
		return "", putErr
	}

	url := fmt.Sprintf("%s/%s/%s", f.publicBaseURL, f.bucket, key)
	logger.Log.Infow("media uploaded", "key", key, "url", url)

	return url, nil
}
