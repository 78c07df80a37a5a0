package storage

import (
	"chat-mirror/contract"
	"encoding/binary"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.ICheckpointStore = (*DocumentStore)(nil)

// LoadCursor returns the last sequence saved for the collection, zero when none was.
func (s *DocumentStore) LoadCursor(collection string) (uint64, error) {
	var seq uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		seq, err = readCursor(txn, collection)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("load cursor of %s: %w", collection, err)
	}
	return seq, nil
}

// SaveCursor stores seq as the resume point of the collection. The cursor never moves back.
func (s *DocumentStore) SaveCursor(collection string, seq uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		current, err := readCursor(txn, collection)
		if err != nil {
			return err
		}
		if seq <= current {
			return nil
		}
		return txn.Set(cursorKey(collection), binary.BigEndian.AppendUint64(nil, seq))
	})
}

// TrimChanges deletes the change records up to and including uptoSeq.
func (s *DocumentStore) TrimChanges(collection string, uptoSeq uint64) (int, error) {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := changePrefix(collection)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		last := changeKey(collection, uptoSeq)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if string(key) > string(last) {
				break
			}
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil || len(keys) == 0 {
		return 0, err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err = wb.Delete(key); err != nil {
			return 0, err
		}
	}
	if err = wb.Flush(); err != nil {
		return 0, fmt.Errorf("trim changes of %s: %w", collection, err)
	}
	return len(keys), nil
}

func readCursor(txn *badger.Txn, collection string) (uint64, error) {
	item, err := txn.Get(cursorKey(collection))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = item.Value(func(v []byte) error {
		if len(v) != 8 {
			return fmt.Errorf("malformed cursor of %s", collection)
		}
		seq = binary.BigEndian.Uint64(v)
		return nil
	})
	return seq, err
}
