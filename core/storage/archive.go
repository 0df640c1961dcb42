package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archive writes raw vendor payloads to a bucket, one object per response.
//
// Objects are named <prefix>/<kind>/<yyyy-mm-dd>/<key>-<unix nanos>.json.
type Archive struct {
	client Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchive creates an archive writing to the given bucket.
func NewArchive(client Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *Archive) EnsureBucket(ctx context.Context, region string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Archive uploads one payload.
func (a *Archive) Archive(ctx context.Context, kind, key string, payload []byte) error {
	name := a.ObjectName(kind, key)
	_, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// ObjectName returns the object name a payload of the given kind and key is stored under now.
func (a *Archive) ObjectName(kind, key string) string {
	ts := a.now().UTC()
	file := fmt.Sprintf("%s-%d.json", sanitize(key), ts.UnixNano())
	return path.Join(a.prefix, sanitize(kind), ts.Format("2006-01-02"), file)
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	if s == "" {
		return "_"
	}
	return s
}
