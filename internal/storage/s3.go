// Package storage uploads media objects to S3 and hands back public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// File is an uploaded file pulled out of a multipart request.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store is the media-store collaborator: content handlers hand it raw bytes
// and keep only the returned URL.
type Store interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type S3Store struct {
	uploader *manager.Uploader
	breaker  *gobreaker.CircuitBreaker
	bucket   string
	region   string
	endpoint string
	folder   string
}

// NewS3Store builds the S3-backed store. An empty endpoint targets AWS
// proper; a non-empty one targets an S3-compatible server (MinIO).
func NewS3Store(ctx context.Context, region, bucket, endpoint, folder string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "s3-upload",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &S3Store{
		uploader: manager.NewUploader(client),
		breaker:  breaker,
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
		folder:   folder,
	}, nil
}

// Upload stores data under a unique key and returns its public URL. Calls go
// through a circuit breaker so a dead backend fails fast instead of stalling
// every create/update request.
func (s *S3Store) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := s.objectKey(filename)
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
	})
	if err != nil {
		return "", err
	}
	return s.publicURL(key), nil
}

func (s *S3Store) objectKey(filename string) string {
	key := uuid.NewString() + path.Ext(filename)
	if s.folder != "" {
		key = s.folder + "/" + key
	}
	return key
}

func (s *S3Store) publicURL(key string) string {
	// keys are folder + uuid + extension, escape only the final segment
	escaped := path.Dir(key)
	if escaped == "." {
		escaped = url.PathEscape(path.Base(key))
	} else {
		escaped += "/" + url.PathEscape(path.Base(key))
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}
