package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ugorji/go/codec"

	"github.com/LeJamon/goassetd/internal/core/payment"
	"github.com/LeJamon/goassetd/internal/storage/database"
	"github.com/LeJamon/goassetd/internal/storage/snapshot/compression"
)

var (
	// ErrNotFound is returned when no snapshot exists for the request
	ErrNotFound = errors.New("snapshot not found")
)

// envelope wraps a serialized snapshot with the metadata needed to undo
// the transport encoding.
type envelope struct {
	Codec   string `codec:"codec"`
	RawSize int    `codec:"rawSize"`
	Body    []byte `codec:"body"`
}

// Store persists issuer snapshots into a key-value database. Snapshots
// are CBOR encoded, optionally compressed, and keyed by issuer name and
// an increasing sequence number. Decoded snapshots are held in an LRU
// cache.
type Store struct {
	db         database.DB
	compressor compression.Compressor
	cache      *lru.Cache[string, *payment.Snapshot]
	handle     codec.CborHandle
}

// NewStore creates a snapshot store on top of db using the named
// compressor ("none" or "lz4") and an LRU cache of cacheSize decoded
// snapshots.
func NewStore(db database.DB, compressorName string, cacheSize int) (*Store, error) {
	comp, err := compression.Get(compressorName)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, *payment.Snapshot](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, compressor: comp, cache: cache}, nil
}

func snapshotKey(issuer string, seq uint64) []byte {
	key := make([]byte, 0, len("snap/")+len(issuer)+1+8)
	key = append(key, "snap/"...)
	key = append(key, issuer...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, seq)
}

func issuerRange(issuer string) (start, end []byte) {
	start = snapshotKey(issuer, 0)
	end = snapshotKey(issuer, ^uint64(0))
	return start, end
}

func cacheKey(issuer string, seq uint64) string {
	return fmt.Sprintf("%s/%d", issuer, seq)
}

// Save persists one issuer snapshot under the given sequence number.
func (s *Store) Save(ctx context.Context, issuer string, seq uint64, snap *payment.Snapshot) error {
	var raw []byte
	enc := codec.NewEncoderBytes(&raw, &s.handle)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	body, err := s.compressor.Compress(raw)
	if err != nil {
		return err
	}

	var record []byte
	env := envelope{Codec: s.compressor.Name(), RawSize: len(raw), Body: body}
	enc = codec.NewEncoderBytes(&record, &s.handle)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode snapshot envelope: %w", err)
	}

	if err := s.db.Write(ctx, snapshotKey(issuer, seq), record); err != nil {
		return err
	}
	s.cache.Add(cacheKey(issuer, seq), snap)
	return nil
}

// Load reads the snapshot stored for issuer at seq.
func (s *Store) Load(ctx context.Context, issuer string, seq uint64) (*payment.Snapshot, error) {
	if snap, ok := s.cache.Get(cacheKey(issuer, seq)); ok {
		return snap, nil
	}

	record, err := s.db.Read(ctx, snapshotKey(issuer, seq))
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: issuer %q seq %d", ErrNotFound, issuer, seq)
		}
		return nil, err
	}

	var env envelope
	dec := codec.NewDecoderBytes(record, &s.handle)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode snapshot envelope: %w", err)
	}

	comp, err := compression.Get(env.Codec)
	if err != nil {
		return nil, err
	}
	raw, err := comp.Decompress(env.Body, env.RawSize)
	if err != nil {
		return nil, err
	}

	snap := new(payment.Snapshot)
	dec = codec.NewDecoderBytes(raw, &s.handle)
	if err := dec.Decode(snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	s.cache.Add(cacheKey(issuer, seq), snap)
	return snap, nil
}

// LatestSeq returns the highest sequence number stored for issuer.
func (s *Store) LatestSeq(ctx context.Context, issuer string) (uint64, error) {
	start, end := issuerRange(issuer)
	iter, err := s.db.Iterator(ctx, start, end)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var (
		latest uint64
		found  bool
	)
	for iter.Next() {
		key := iter.Key()
		if len(key) < 8 {
			continue
		}
		latest = binary.BigEndian.Uint64(key[len(key)-8:])
		found = true
	}
	if err := iter.Error(); err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: issuer %q", ErrNotFound, issuer)
	}
	return latest, nil
}

// Issuers returns the distinct issuer names with at least one stored
// snapshot.
func (s *Store) Issuers(ctx context.Context) ([]string, error) {
	prefix := []byte("snap/")
	end := []byte("snap0") // '0' is the byte after '/'
	iter, err := s.db.Iterator(ctx, prefix, end)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	seen := make(map[string]struct{})
	for iter.Next() {
		key := iter.Key()
		if len(key) < len(prefix)+1+8 {
			continue
		}
		name := string(key[len(prefix) : len(key)-9])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return names, nil
}

// LoadLatest reads the most recent snapshot stored for issuer.
func (s *Store) LoadLatest(ctx context.Context, issuer string) (*payment.Snapshot, uint64, error) {
	seq, err := s.LatestSeq(ctx, issuer)
	if err != nil {
		return nil, 0, err
	}
	snap, err := s.Load(ctx, issuer, seq)
	if err != nil {
		return nil, 0, err
	}
	return snap, seq, nil
}
