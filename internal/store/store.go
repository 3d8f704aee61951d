package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

var (
	bucketName = []byte("wordflash")
	// collectionKey is the single fixed key the whole collection lives under,
	// serialized as one JSON array.
	collectionKey = []byte("cards")
)

// Store persists the card collection as one key-value blob. It owns the
// on-disk representation; callers hold only transient card slices.
type Store struct {
	db  *bolt.DB
	log *logger.Logger
}

// Open opens (or creates) the store file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	log := logger.Default().WithPrefix("store")
	log.Info("opening store: %s", path)

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	s.log.Debug("closing store")
	return s.db.Close()
}

// Load reads the persisted collection. A missing or unparsable blob is not
// an error: the trainer starts over with an empty collection.
func (s *Store) Load(ctx context.Context) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(collectionKey); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "read collection")
	}
	if raw == nil {
		log.Debug("no persisted collection, starting empty")
		return nil, nil
	}

	var cards []models.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		log.Warn("persisted collection is unparsable, discarding: %v", err)
		return nil, nil
	}
	log.Debug("loaded %d cards", len(cards))
	return cards, nil
}

// Save rewrites the whole collection blob. Called after every mutation so
// the in-memory state and the file never diverge.
func (s *Store) Save(ctx context.Context, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	if cards == nil {
		cards = []models.Card{}
	}
	encoded, err := json.Marshal(cards)
	if err != nil {
		return errors.Wrap(err, "encode collection")
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(collectionKey, encoded)
	})
	if err != nil {
		return errors.Wrap(err, "write collection")
	}
	log.Debug("saved %d cards", len(cards))
	return nil
}
