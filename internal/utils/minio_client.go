package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore wraps a MinIO client with the bucket and public base URL the
// service serves media from.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type UploadedObject struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func NewObjectStore(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (*ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}

		// Public read-only policy, uploads go through presigned URLs only
		publicPolicy := `{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Action": ["s3:GetObject"],
					"Effect": "Allow",
					"Principal": "*",
					"Resource": "arn:aws:s3:::` + bucket + `/*"
				}
			]
		}`

		if err := client.SetBucketPolicy(ctx, bucket, publicPolicy); err != nil {
			return nil, err
		}
	}

	return &ObjectStore{client: client, bucket: bucket, publicURL: publicURL}, nil
}

func (s *ObjectStore) FetchFile(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

func (s *ObjectStore) UploadFile(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (*UploadedObject, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &UploadedObject{
		Key:         key,
		URL:         s.PublicURL(key),
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

// PresignedPutURL issues a direct-upload URL so clients never send bytes
// through this service.
func (s *ObjectStore) PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

func (s *ObjectStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(s.publicURL, "/"),
		s.bucket,
		key,
	)
}

// ExtractKeyFromURL recovers the object key from a public URL produced by
// PublicURL. Returns "" if the URL does not point into the bucket.
func (s *ObjectStore) ExtractKeyFromURL(publicURL string) string {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(parsed.Path, "/")
	if !strings.HasPrefix(p, s.bucket+"/") {
		return ""
	}
	return strings.TrimPrefix(p, s.bucket+"/")
}
