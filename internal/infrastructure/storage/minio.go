package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meetmind/pkg/config"
)

const (
	rawOutputPrefix = "raw-outputs"
	audioPrefix     = "audio"

	// AssemblyAI fetches the upload through this URL, so it has to outlive
	// a queued transcription job.
	audioURLExpiry = 2 * time.Hour

	maxRawOutputSize = 4 << 20
)

// MinIOClient archives undecodable model output and stages audio uploads
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // e.g. https://minio.example.com when served behind a proxy
	now       func() time.Time
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		now:       time.Now,
	}

	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ArchiveRawOutput stores a model response that could not be decoded and
// returns its object key.
func (m *MinIOClient) ArchiveRawOutput(ctx context.Context, raw string) (string, error) {
	key := RawOutputKey(m.now(), uuid.New())
	if err := m.UploadFile(ctx, key, strings.NewReader(raw), int64(len(raw)), "text/plain; charset=utf-8"); err != nil {
		return "", err
	}
	return key, nil
}

// UploadAudio stores an uploaded recording and returns a presigned URL the
// transcription service can download it from.
func (m *MinIOClient) UploadAudio(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := AudioKey(m.now(), uuid.New(), filename)
	if err := m.UploadFile(ctx, key, reader, size, contentType); err != nil {
		return "", err
	}
	return m.GetFileURL(ctx, key, audioURLExpiry)
}

// UploadFile uploads an object to the bucket
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// GetFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	if m.publicURL == "" {
		return u.String(), nil
	}
	return rebaseURL(m.publicURL, u.RequestURI()), nil
}

// ListFiles lists object keys under prefix
func (m *MinIOClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}

	return files, nil
}

// ListRawOutputs lists the archived outputs for one UTC day
func (m *MinIOClient) ListRawOutputs(ctx context.Context, day time.Time) ([]string, error) {
	return m.ListFiles(ctx, path.Join(rawOutputPrefix, day.UTC().Format("2006-01-02"))+"/")
}

// ReadRawOutput returns an archived output. Keys outside raw-outputs/ are
// rejected.
func (m *MinIOClient) ReadRawOutput(ctx context.Context, key string) (string, error) {
	if !IsRawOutputKey(key) {
		return "", fmt.Errorf("not a raw output key: %q", key)
	}

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxRawOutputSize))
	if err != nil {
		return "", fmt.Errorf("failed to read object: %w", err)
	}
	return string(data), nil
}

// Ping reports whether the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

// RawOutputKey is raw-outputs/<yyyy-mm-dd>/<id>.txt
func RawOutputKey(at time.Time, id uuid.UUID) string {
	return path.Join(rawOutputPrefix, at.UTC().Format("2006-01-02"), id.String()+".txt")
}

// IsRawOutputKey reports whether key names an object under raw-outputs/
func IsRawOutputKey(key string) bool {
	clean := path.Clean(key)
	return clean == key && strings.HasPrefix(clean, rawOutputPrefix+"/")
}

// AudioKey is audio/<yyyy-mm-dd>/<id><ext>, keeping the upload's extension
func AudioKey(at time.Time, id uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if ext == "." {
		ext = ""
	}
	return path.Join(audioPrefix, at.UTC().Format("2006-01-02"), id.String()+ext)
}

// rebaseURL swaps the internal endpoint for the public one, keeping the
// bucket path and signature query.
func rebaseURL(publicURL, requestURI string) string {
	return publicURL + requestURI
}
