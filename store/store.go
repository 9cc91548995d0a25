// Package store keeps named tree snapshots in a bbolt database.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/robert-malhotra/go-composite/composite"
	"github.com/robert-malhotra/go-composite/internal/snapshot"
)

var (
	bucketTrees = []byte("trees")
	bucketInfo  = []byte("info")
)

var (
	ErrNotFound  = errors.New("store: tree not found")
	ErrEmptyName = errors.New("store: empty tree name")
)

// Info describes a stored tree.
type Info struct {
	ID         uuid.UUID `msgpack:"id"`
	Name       string    `msgpack:"n"`
	Created    time.Time `msgpack:"c"`
	Points     int64     `msgpack:"p"`
	Cells      int64     `msgpack:"cl"`
	Blocks     int       `msgpack:"b"`
	Size       int       `msgpack:"s"`
	Compressed bool      `msgpack:"z,omitempty"`
}

// Store is a snapshot database. It is safe for concurrent use.
type Store struct {
	db       *bbolt.DB
	compress bool
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	compress bool
	timeout  time.Duration
	readOnly bool
	log      zerolog.Logger
}

// WithCompression sets whether snapshots are written snappy compressed.
func WithCompression(on bool) Option {
	return func(o *openOptions) { o.compress = on }
}

// WithTimeout bounds the wait for the database file lock.
func WithTimeout(d time.Duration) Option {
	return func(o *openOptions) { o.timeout = d }
}

// WithReadOnly opens the database without write access.
func WithReadOnly() Option {
	return func(o *openOptions) { o.readOnly = true }
}

// WithLogger sets the logger for store events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *openOptions) { o.log = l }
}

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	o := openOptions{compress: true, timeout: time.Second, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: o.timeout, ReadOnly: o.readOnly})
	if err != nil {
		return nil, errors.Wrapf(err, "opening store %s", path)
	}
	if !o.readOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			for _, name := range [][]byte{bucketTrees, bucketInfo} {
				if _, err := tx.CreateBucketIfNotExists(name); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			db.Close()
			return nil, errors.Wrap(err, "creating buckets")
		}
	}
	return &Store{db: db, compress: o.compress, log: o.log, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// Put stores t under name, replacing any tree stored under it before.
func (s *Store) Put(name string, t *composite.Tree) (Info, error) {
	if name == "" {
		return Info{}, ErrEmptyName
	}
	var opts []snapshot.Option
	if s.compress {
		opts = append(opts, snapshot.WithCompression())
	}
	frame, err := snapshot.Encode(t, opts...)
	if err != nil {
		return Info{}, errors.Wrapf(err, "encoding %s", name)
	}

	info := Info{
		ID:         uuid.New(),
		Name:       name,
		Created:    s.now().UTC(),
		Points:     t.NumberOfPoints(),
		Cells:      t.NumberOfCells(),
		Blocks:     countBlocks(t),
		Size:       len(frame),
		Compressed: s.compress,
	}
	meta, err := msgpack.Marshal(&info)
	if err != nil {
		return Info{}, errors.Wrap(err, "encoding info")
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketTrees).Put([]byte(name), frame); err != nil {
			return err
		}
		return tx.Bucket(bucketInfo).Put([]byte(name), meta)
	})
	if err != nil {
		return Info{}, errors.Wrapf(err, "storing %s", name)
	}
	s.log.Debug().Str("name", name).Stringer("id", info.ID).Int("size", info.Size).Msg("stored tree")
	return info, nil
}

// Get loads the tree stored under name.
func (s *Store) Get(name string) (*composite.Tree, Info, error) {
	var frame []byte
	var info Info
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		if info, err = readInfo(tx, name); err != nil {
			return err
		}
		// bbolt values are only valid inside the transaction.
		frame = append([]byte(nil), tx.Bucket(bucketTrees).Get([]byte(name))...)
		return nil
	})
	if err != nil {
		return nil, Info{}, err
	}
	t, err := snapshot.Decode(frame)
	if err != nil {
		return nil, Info{}, errors.Wrapf(err, "decoding %s", name)
	}
	return t, info, nil
}

// Stat returns the description of the tree stored under name.
func (s *Store) Stat(name string) (Info, error) {
	var info Info
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		info, err = readInfo(tx, name)
		return err
	})
	return info, err
}

// List describes all stored trees in name order.
func (s *Store) List() ([]Info, error) {
	var out []Info
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketInfo)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var info Info
			if err := msgpack.Unmarshal(v, &info); err != nil {
				return errors.Wrapf(err, "decoding info of %s", k)
			}
			out = append(out, info)
			return nil
		})
	})
	return out, err
}

// Delete removes the tree stored under name.
func (s *Store) Delete(name string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(name)
		if tx.Bucket(bucketInfo).Get(key) == nil {
			return errors.Wrapf(ErrNotFound, "%q", name)
		}
		if err := tx.Bucket(bucketTrees).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(bucketInfo).Delete(key)
	})
	if err == nil {
		s.log.Debug().Str("name", name).Msg("deleted tree")
	}
	return err
}

func readInfo(tx *bbolt.Tx, name string) (Info, error) {
	var info Info
	b := tx.Bucket(bucketInfo)
	if b == nil {
		return info, errors.Wrapf(ErrNotFound, "%q", name)
	}
	v := b.Get([]byte(name))
	if v == nil {
		return info, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err := msgpack.Unmarshal(v, &info); err != nil {
		return info, errors.Wrapf(err, "decoding info of %s", name)
	}
	return info, nil
}

func countBlocks(t *composite.Tree) int {
	n := 0
	it := t.NewTreeIterator(composite.WithSkipEmptyNodes())
	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		n++
	}
	return n
}
