package cache

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/tlsn-go/witnessgen/internal/logger"
)

const digestBucket = "witness_digests"

// bboltBackend is a Backend backed by an embedded bbolt database. Entries
// survive process restarts. The database file is created at the given path
// if it does not exist.
type bboltBackend struct {
	db  *bolt.DB
	log *logger.Logger
}

// newBboltBackend opens (or creates) the bbolt database at path and ensures
// the bucket exists.
func newBboltBackend(path string, log *logger.Logger) (Backend, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bbolt digest cache %q: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(digestBucket))
		return err
	}); err != nil {
		db.Close() //nolint:errcheck // best-effort close on init failure
		return nil, fmt.Errorf("create bbolt bucket: %w", err)
	}

	log.Infof("open", "bbolt digest cache opened at %s", path)
	return &bboltBackend{db: db, log: log}, nil
}

func (b *bboltBackend) Get(key string) ([]byte, bool) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(digestBucket))
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		b.log.Errorf("get", "bbolt get error: %v", err)
		return nil, false
	}
	return value, value != nil
}

func (b *bboltBackend) Set(key string, value []byte) {
	if err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(digestBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %q not found", digestBucket)
		}
		return bucket.Put([]byte(key), value)
	}); err != nil {
		b.log.Errorf("set", "bbolt set error: %v", err)
	}
}

func (b *bboltBackend) Delete(key string) {
	if err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(digestBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	}); err != nil {
		b.log.Errorf("delete", "bbolt delete error: %v", err)
	}
}

func (b *bboltBackend) Close() error { return b.db.Close() }
