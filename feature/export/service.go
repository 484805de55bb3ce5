package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"duplicate-monitor/core/storage"
	"duplicate-monitor/feature/alerts"
)

const recentLimit = 50

// digestPrefix is where digests live inside the bucket.
const digestPrefix = "digests/"

// ErrNoDigests is returned when the bucket holds no digest objects.
var ErrNoDigests = errors.New("no digests in bucket")

// AlertSource supplies the alert data included in a digest.
type AlertSource interface {
	Counts(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context, limit int) ([]alerts.Alert, error)
}

// Digest is a point in time snapshot of alert activity.
type Digest struct {
	GeneratedAt int64            `json:"generated_at"`
	Counts      map[string]int64 `json:"counts"`
	Recent      []alerts.Alert   `json:"recent"`
}

// Service archives alert digests to object storage.
type Service struct {
	client storage.Client
	bucket string
	source AlertSource
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new export service.
func NewService(client storage.Client, bucket string, source AlertSource, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Export builds a digest of current alert activity and uploads it. It
// returns the object name of the uploaded digest.
func (s *Service) Export(ctx context.Context) (string, error) {
	counts, err := s.source.Counts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count alerts: %w", err)
	}
	recent, err := s.source.Recent(ctx, recentLimit)
	if err != nil {
		return "", fmt.Errorf("failed to list recent alerts: %w", err)
	}

	now := s.now().UTC()
	digest := Digest{
		GeneratedAt: now.Unix(),
		Counts:      counts,
		Recent:      recent,
	}
	payload, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return "", err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%salerts-%s.json", digestPrefix, now.Format("20060102T150405Z"))
	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload digest: %w", err)
	}

	s.logger.Info("Exported alert digest",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName),
		zap.Int("alerts", len(recent)))
	return objectName, nil
}

// ListDigests returns all digest object names, oldest first. The names
// embed a UTC timestamp, so lexicographic order is chronological.
func (s *Service) ListDigests(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    digestPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list digests: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	sort.Strings(names)
	return names, nil
}

// Latest downloads and decodes the newest digest, returning it together
// with its object name.
func (s *Service) Latest(ctx context.Context) (*Digest, string, error) {
	names, err := s.ListDigests(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(names) == 0 {
		return nil, "", ErrNoDigests
	}

	name := names[len(names)-1]
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch digest: %w", err)
	}
	defer obj.Close()

	var digest Digest
	if err := json.NewDecoder(obj).Decode(&digest); err != nil {
		return nil, "", fmt.Errorf("failed to decode digest %s: %w", name, err)
	}
	return &digest, name, nil
}

// PruneDigests deletes all but the newest keep digests and returns the
// names of the removed objects.
func (s *Service) PruneDigests(ctx context.Context, keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	names, err := s.ListDigests(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) <= keep {
		return nil, nil
	}

	stale := names[:len(names)-keep]
	for _, name := range stale {
		if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			return nil, fmt.Errorf("failed to remove digest %s: %w", name, err)
		}
	}
	s.logger.Info("Pruned old digests",
		zap.String("bucket", s.bucket),
		zap.Int("removed", len(stale)),
		zap.Int("kept", keep))
	return stale, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}
