// Package snapshot archives catalog snapshots to object storage.
//
// Every successful full refresh uploads the fetched catalog as JSON, keeping
// both a timestamped object for auditing and a latest pointer for restore.
// The archive is the last-resort seed source when both the wiki and the
// database are unavailable at startup.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"mention-scanner/core/storage"
	"mention-scanner/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Snapshot is one archived catalog state for a single entry type.
type Snapshot struct {
	EntryType models.EntryType   `json:"entry_type"`
	TakenAt   time.Time          `json:"taken_at"`
	Entries   []models.WikiEntry `json:"entries"`
}

// Archive stores and retrieves catalog snapshots in an object-storage bucket.
type Archive struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// New creates an archive backed by the given storage client and bucket.
func New(client storage.Client, bucket string, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{client: client, bucket: bucket, logger: logger}
}

// Save uploads a snapshot as both a timestamped object and the type's latest
// pointer. The bucket is created on first use.
func (a *Archive) Save(ctx context.Context, snap Snapshot) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	stamped := a.objectName(snap.EntryType, snap.TakenAt.UTC().Format(time.RFC3339))
	for _, name := range []string{stamped, a.latestName(snap.EntryType)} {
		_, err := a.client.PutObject(ctx, a.bucket, name,
			bytes.NewReader(payload), int64(len(payload)),
			minio.PutObjectOptions{ContentType: "application/json"})
		if err != nil {
			return fmt.Errorf("failed to upload snapshot %s: %w", name, err)
		}
	}

	a.logger.Debug("catalog snapshot archived",
		zap.String("entry_type", string(snap.EntryType)),
		zap.Int("entries", len(snap.Entries)))
	return nil
}

// LoadLatest retrieves the most recent snapshot for an entry type.
func (a *Archive) LoadLatest(ctx context.Context, entryType models.EntryType) (*Snapshot, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.latestName(entryType), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest snapshot: %w", err)
	}
	defer obj.Close()

	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Prune removes timestamped snapshots of an entry type beyond the newest
// keep objects. The latest pointer is never pruned.
func (a *Archive) Prune(ctx context.Context, entryType models.EntryType, keep int) error {
	prefix := "snapshots/" + a.typeSegment(entryType) + "/"

	var names []string
	for info := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return fmt.Errorf("failed to list snapshots: %w", info.Err)
		}
		if info.Key == a.latestName(entryType) {
			continue
		}
		names = append(names, info.Key)
	}
	if len(names) <= keep {
		return nil
	}

	// Object names embed RFC3339 timestamps, so lexical order is age order.
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := a.client.RemoveObject(ctx, a.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to prune snapshot %s: %w", name, err)
		}
	}
	return nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (a *Archive) objectName(entryType models.EntryType, stamp string) string {
	return "snapshots/" + a.typeSegment(entryType) + "/" + stamp + ".json"
}

func (a *Archive) latestName(entryType models.EntryType) string {
	return "snapshots/" + a.typeSegment(entryType) + "/latest.json"
}

func (a *Archive) typeSegment(entryType models.EntryType) string {
	return strings.ToLower(string(entryType))
}
