package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Entry is a single audit record as stored on disk.
type Entry struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Log is the append-only audit store backed by BoltDB. Keys are
// timestamp-ordered so a cursor walk returns entries chronologically.
type Log struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the Bolt file and ensures the bucket exists.
func Open(path string, bucket string) (*Log, error) {
	if bucket == "" {
		bucket = "audit"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Log{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Append stores one audit entry. Existing entries are never touched.
func (l *Log) Append(entry Entry) error {
	if l == nil || l.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := entryKey(entry)

	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(l.bucket).Put(key, payload)
	})
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if l == nil || l.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var entries []Entry
	err := l.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(l.bucket).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

// Size returns the number of stored entries.
func (l *Log) Size() (int, error) {
	if l == nil || l.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := l.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(l.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes entries recorded before the provided timestamp.
func (l *Log) Cleanup(olderThan time.Time) error {
	if l == nil || l.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(l.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			if entry.RecordedAt.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func entryKey(entry Entry) []byte {
	return []byte(fmt.Sprintf("%020d_%s", entry.RecordedAt.UnixNano(), entry.ID))
}
