package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	bucket   string
)

func InitStorage(bucketName, region string) error {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	bucket = bucketName
	return nil
}

// ArchiveExport keeps a copy of a generated CSV export in the archive
// bucket, keyed by export kind and timestamp. Returns the object key.
func ArchiveExport(ctx context.Context, kind string, data []byte) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("storage is not initialized")
	}

	key := fmt.Sprintf("exports/%s/%s.csv", kind, time.Now().UTC().Format("2006-01-02T15-04-05"))

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("could not archive export: %v", err)
	}

	return key, nil
}

func Enabled() bool {
	return s3Client != nil
}
