package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/LeJamon/goassetd/internal/storage/database"
)

var syncWrites = &opt.WriteOptions{Sync: true}

type DB struct {
	db *leveldb.DB
}

func NewDB(db *leveldb.DB) *DB {
	return &DB{db: db}
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}

	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	// Get already returns a copy
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return l.db.Put(key, value, syncWrites)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return l.db.Delete(key, syncWrites)
}

func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if l.db == nil {
		return database.ErrDBClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			batch.Put(op.Key, op.Value)
		case database.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}

	return l.db.Write(batch, syncWrites)
}

type Iterator struct {
	iter    iterator.Iterator
	current struct {
		key, value []byte
	}
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}

	iter := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return &Iterator{iter: iter}, nil
}

func (it *Iterator) Next() bool {
	if !it.iter.Next() {
		return false
	}

	// the underlying slices are only valid until the next call
	key := it.iter.Key()
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	val := it.iter.Value()
	valCopy := make([]byte, len(val))
	copy(valCopy, val)

	it.current.key = keyCopy
	it.current.value = valCopy
	return true
}

func (it *Iterator) Key() []byte {
	return it.current.key
}

func (it *Iterator) Value() []byte {
	return it.current.value
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	it.iter.Release()
	return it.iter.Error()
}
