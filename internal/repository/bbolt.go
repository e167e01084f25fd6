package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/NamanBalaji/pulse/internal/tracker"
)

const (
	runsBucket     = "runs"
	metadataBucket = "metadata"
	schemaVersion  = 1
)

var (
	// ErrRunNotFound is returned when a run record cannot be found.
	ErrRunNotFound = errors.New("run not found")
)

// RunRecord is the persisted summary of a finished run: what the job was and
// how its ticks behaved.
type RunRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Total        int64     `json:"total"`
	ElapsedMs    int64     `json:"elapsed_ms"`
	TickMeanMs   float64   `json:"tick_mean_ms"`
	TickMedianMs float64   `json:"tick_median_ms"`
	TickStdDevMs float64   `json:"tick_stddev_ms"`
	TickMinMs    int64     `json:"tick_min_ms"`
	TickMaxMs    int64     `json:"tick_max_ms"`
	Samples      int       `json:"samples"`
	FinishedAt   time.Time `json:"finished_at"`
}

// RecordOf builds a run record from a tracker's final state.
func RecordOf(t *tracker.Tracker) *RunRecord {
	rec := &RunRecord{
		ID:         t.ID(),
		Name:       t.Name(),
		Total:      t.Total(),
		ElapsedMs:  t.Elapsed().Milliseconds(),
		FinishedAt: time.Now(),
	}

	if stats, ok := t.TickStats(); ok {
		rec.TickMeanMs = stats.Mean
		rec.TickMedianMs = stats.Median
		rec.TickStdDevMs = stats.StdDev
		rec.TickMinMs = stats.Min
		rec.TickMaxMs = stats.Max
		rec.Samples = stats.Samples
	}

	return rec
}

// BboltJournal stores run records in a bbolt database.
type BboltJournal struct {
	db *bbolt.DB
}

// NewBboltJournal opens (or creates) a journal at dbPath.
func NewBboltJournal(dbPath string) (*BboltJournal, error) {
	options := &bbolt.Options{
		Timeout: 1 * time.Second,
	}

	db, err := bbolt.Open(dbPath, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	journal := &BboltJournal{
		db: db,
	}

	if err := journal.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return journal, nil
}

// initialize sets up buckets and schema
func (j *BboltJournal) initialize() error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		if err != nil {
			return fmt.Errorf("failed to create runs bucket: %w", err)
		}

		metadataBucket, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		versionBytes := []byte(fmt.Sprintf("%d", schemaVersion))
		err = metadataBucket.Put([]byte("schema_version"), versionBytes)
		if err != nil {
			return fmt.Errorf("failed to store schema version: %w", err)
		}

		return nil
	})
}

// Save persists a run record.
func (j *BboltJournal) Save(record *RunRecord) error {
	if record == nil {
		return errors.New("cannot save nil run record")
	}

	return j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal run record: %w", err)
		}

		err = bucket.Put([]byte(record.ID.String()), data)
		if err != nil {
			return fmt.Errorf("failed to save run record: %w", err)
		}

		return nil
	})
}

// Find retrieves a run record by ID.
func (j *BboltJournal) Find(id uuid.UUID) (*RunRecord, error) {
	if id == uuid.Nil {
		return nil, errors.New("run ID cannot be empty")
	}

	var record RunRecord

	err := j.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		data := bucket.Get([]byte(id.String()))
		if data == nil {
			return ErrRunNotFound
		}

		return json.Unmarshal(data, &record)
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// FindAll retrieves every stored run record.
func (j *BboltJournal) FindAll() ([]*RunRecord, error) {
	var records []*RunRecord

	err := j.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		return bucket.ForEach(func(_, v []byte) error {
			var record RunRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal run record: %w", err)
			}

			records = append(records, &record)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes a run record by ID.
func (j *BboltJournal) Delete(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("run ID cannot be empty")
	}

	return j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		key := []byte(id.String())
		if bucket.Get(key) == nil {
			return ErrRunNotFound
		}

		return bucket.Delete(key)
	})
}

// Close closes the underlying database.
func (j *BboltJournal) Close() error {
	return j.db.Close()
}
