package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jacentio/roster/internal/match"
)

const boltBucket = "records"

// Bolt is a Store backed by a bbolt file. Records are kept under big-endian
// sequence keys so that bucket iteration yields insertion order. Values are
// JSON-encoded.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) the database file and ensures the records
// bucket exists.
func NewBolt(path string, mode os.FileMode) (*Bolt, error) {
	db, err := bbolt.Open(path, mode, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Close releases the underlying database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Create implements Store.
func (b *Bolt) Create(ctx context.Context, name string, age int, scores []float64) (*Record, error) {
	r, err := NewRecord(name, age, scores)
	if err != nil {
		return nil, err
	}

	err = b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(boltBucket))
		seq, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		buf, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return bkt.Put(seqKey(seq), buf)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Find implements Store.
func (b *Bolt) Find(ctx context.Context, name string) (*Record, error) {
	var found *Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		_, r, err := firstMatch(tx, name)
		if err != nil {
			return err
		}
		found = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Update implements Store.
func (b *Bolt) Update(ctx context.Context, name string, age int, scores []float64) (*Record, error) {
	var updated *Record
	err := b.db.Update(func(tx *bbolt.Tx) error {
		k, r, err := firstMatch(tx, name)
		if err != nil {
			return err
		}
		if err := validateFields(age, scores); err != nil {
			return err
		}

		r.Age = age
		r.Scores = append([]float64(nil), scores...)
		r.UpdatedAt = time.Now().UTC()
		r.Version++

		buf, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(boltBucket)).Put(k, buf); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements Store.
func (b *Bolt) Delete(ctx context.Context, name string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		k, _, err := firstMatch(tx, name)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(boltBucket)).Delete(k)
	})
}

// List implements Store.
func (b *Bolt) List(ctx context.Context) ([]*Record, error) {
	records := []*Record{}
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).ForEach(func(k, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			records = append(records, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count implements Store.
func (b *Bolt) Count(ctx context.Context) (int, error) {
	count := 0
	err := b.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(boltBucket)).Stats().KeyN
		return nil
	})
	if err != nil {
		return -1, err
	}
	return count, nil
}

// firstMatch cursors through the bucket in key order and returns the key
// and decoded record of the first case-insensitive name match.
func firstMatch(tx *bbolt.Tx, name string) ([]byte, *Record, error) {
	c := tx.Bucket([]byte(boltBucket)).Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var r Record
		if err := json.Unmarshal(v, &r); err != nil {
			return nil, nil, err
		}
		if match.Equal(r.Name, name) {
			key := append([]byte(nil), k...)
			return key, &r, nil
		}
	}
	return nil, nil, ErrNotFound
}

// seqKey encodes a bucket sequence number so that byte order equals
// numeric order.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
