package storage

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ contract.IDocumentStore = (*DocumentStore)(nil)

const (
	sequenceBandwidth   = 100
	changeBatchSize     = 256
	defaultPollInterval = 250 * time.Millisecond
	defaultFeedBuffer   = 128
)

// DocumentStore is the authoritative document store backed by BadgerDB.
//
// Keys:
//   - "doc:{collection}:{id}" holds the document body.
//   - "chg:{collection}:{seq}" holds the change log, seq being zero padded so that
//     a prefix scan returns changes in commit order.
//
// Writes are serialized so that sequence order and commit order are the same,
// which lets a subscriber tail the log by remembering only the last sequence seen.
type DocumentStore struct {
	db           *badger.DB
	log          *slog.Logger
	mu           sync.Mutex
	sequences    map[string]*badger.Sequence
	pollInterval time.Duration
	feedBuffer   int
}

type Option func(*DocumentStore)

// WithPollInterval bounds the latency of a subscriber that missed a wake-up.
func WithPollInterval(d time.Duration) Option {
	return func(s *DocumentStore) { s.pollInterval = d }
}

func WithFeedBuffer(n int) Option {
	return func(s *DocumentStore) { s.feedBuffer = n }
}

func NewDocumentStore(db *badger.DB, log *slog.Logger, opts ...Option) *DocumentStore {
	s := &DocumentStore{
		db:           db,
		log:          log,
		sequences:    make(map[string]*badger.Sequence),
		pollInterval: defaultPollInterval,
		feedBuffer:   defaultFeedBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the leased sequence ranges. The Badger handle stays owned by the caller.
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, seq := range s.sequences {
		errs = append(errs, seq.Release())
	}
	s.sequences = make(map[string]*badger.Sequence)
	return stderrors.Join(errs...)
}

func (s *DocumentStore) Append(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Put(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Put writes a document under a caller chosen id.
// It is recorded as added for a new id and as modified otherwise.
func (s *DocumentStore) Put(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encodeFields(fields)
	if err != nil {
		return err
	}
	return s.write(collection, func(txn *badger.Txn, seq uint64) error {
		changeType := domain.ChangeModified
		if _, err := txn.Get(docKey(collection, id)); stderrors.Is(err, badger.ErrKeyNotFound) {
			changeType = domain.ChangeAdded
		} else if err != nil {
			return err
		}
		if err := txn.Set(docKey(collection, id), body); err != nil {
			return err
		}
		return s.logChange(txn, collection, seq, changeType, domain.Document{ID: id, Fields: fields})
	})
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (domain.Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, false, err
	}
	var fields map[string]any
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		fields, err = readDocument(txn, collection, id)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Document{}, false, nil
	}
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return domain.Document{ID: id, Fields: fields}, true, nil
}

// Update merges fields into an existing document.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(collection, func(txn *badger.Txn, seq uint64) error {
		current, err := readDocument(txn, collection, id)
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s/%s", errors.ErrNotFound, collection, id)
		}
		if err != nil {
			return err
		}
		for k, v := range fields {
			current[k] = v
		}
		body, err := encodeFields(current)
		if err != nil {
			return err
		}
		if err = txn.Set(docKey(collection, id), body); err != nil {
			return err
		}
		return s.logChange(txn, collection, seq, domain.ChangeModified, domain.Document{ID: id, Fields: current})
	})
}

// Delete removes a document; the removal change carries its last snapshot.
// Deleting an absent document is a no-op.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(collection, func(txn *badger.Txn, seq uint64) error {
		current, err := readDocument(txn, collection, id)
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = txn.Delete(docKey(collection, id)); err != nil {
			return err
		}
		return s.logChange(txn, collection, seq, domain.ChangeRemoved, domain.Document{ID: id, Fields: current})
	})
}

// Query scans the collection, applies the filters, then sorts and pages the result.
// Ties on the order field fall back to the document id, in the same direction.
func (s *DocumentStore) Query(ctx context.Context, collection string, q domain.Query) ([]domain.Document, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("%w: limit %d offset %d", errors.ErrInvalidPagination, q.Limit, q.Offset)
	}
	var docs []domain.Document
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := docPrefix(collection)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			id := string(item.Key()[len(prefix):])
			err := item.Value(func(v []byte) error {
				fields, err := decodeFields(v)
				if err != nil {
					return fmt.Errorf("decode %s/%s: %w", collection, id, err)
				}
				docs = append(docs, domain.Document{ID: id, Fields: fields})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs = lo.Filter(docs, func(doc domain.Document, _ int) bool {
		return lo.EveryBy(q.Where, func(f domain.Filter) bool { return matches(doc.Fields, f) })
	})
	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c, ok := compareValues(docs[i].Fields[q.OrderBy], docs[j].Fields[q.OrderBy])
			if !ok || c == 0 {
				c = strings.Compare(docs[i].ID, docs[j].ID)
			}
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Offset >= len(docs) {
		return nil, nil
	}
	docs = docs[q.Offset:]
	if q.Limit > 0 && q.Limit < len(docs) {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

// Subscribe streams every change of the collection committed after fromSeq.
//
// The change log is the source of truth: a Badger subscription on the log prefix only
// wakes the tailer up, and a ticker covers the window before that subscription is
// registered. The returned channel is closed when ctx ends or when the Badger
// subscription stops on its own (database closed), which the caller treats as a
// transport failure and resubscribes from the last sequence it processed.
func (s *DocumentStore) Subscribe(ctx context.Context, collection string, fromSeq uint64) (<-chan domain.ChangeEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feedCtx, cancel := context.WithCancel(ctx)
	wake := make(chan struct{}, 1)
	out := make(chan domain.ChangeEvent, s.feedBuffer)

	go func() {
		defer cancel()
		err := s.db.Subscribe(feedCtx, func(_ *badger.KVList) error {
			select {
			case wake <- struct{}{}:
			default:
			}
			return nil
		}, []pb.Match{{Prefix: changePrefix(collection)}})
		if err != nil && !stderrors.Is(err, context.Canceled) {
			s.log.Warn("Change subscription stopped", "collection", collection, "error", err)
		}
	}()

	go s.tail(feedCtx, cancel, collection, fromSeq, wake, out)
	return out, nil
}

func (s *DocumentStore) tail(ctx context.Context, cancel context.CancelFunc, collection string, last uint64,
	wake <-chan struct{}, out chan<- domain.ChangeEvent) {
	defer close(out)
	defer cancel()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		batch, err := s.changesAfter(collection, last)
		for _, evt := range batch.events {
			select {
			case out <- evt:
				last = evt.Seq
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			s.log.Error("Reading change log failed", "collection", collection, "seq", last, "error", err)
			return
		}
		last = max(last, batch.scanned)
		if batch.full {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-wake:
		case <-ticker.C:
		}
	}
}

// Changes returns one batch of the change log after fromSeq, oldest first.
// Records that cannot be decoded are left out.
func (s *DocumentStore) Changes(collection string, fromSeq uint64) ([]domain.ChangeEvent, error) {
	batch, err := s.changesAfter(collection, fromSeq)
	return batch.events, err
}

type changeBatch struct {
	events []domain.ChangeEvent
	// scanned is the highest sequence read, decodable or not.
	scanned uint64
	full    bool
}

// changesAfter reads up to changeBatchSize records after last. An undecodable record is
// logged and stepped over so that it never holds back the records behind it.
func (s *DocumentStore) changesAfter(collection string, last uint64) (changeBatch, error) {
	batch := changeBatch{scanned: last}
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := changePrefix(collection)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		read := 0
		for it.Seek(changeKey(collection, last+1)); it.ValidForPrefix(prefix) && read < changeBatchSize; it.Next() {
			item := it.Item()
			read++
			seq, err := parseSeq(item.Key()[len(prefix):])
			if err != nil {
				s.log.Error("Skipping malformed change key", "collection", collection, "key", string(item.Key()), "error", err)
				continue
			}
			batch.scanned = max(batch.scanned, seq)
			var evt domain.ChangeEvent
			err = item.Value(func(v []byte) error {
				evt, err = decodeChange(collection, seq, v)
				return err
			})
			if err != nil {
				s.log.Error("Skipping undecodable change", "collection", collection, "seq", seq, "error", err)
				continue
			}
			batch.events = append(batch.events, evt)
		}
		batch.full = read == changeBatchSize
		return nil
	})
	return batch, err
}

// write runs fn in a Badger transaction under the store lock, with the next sequence number.
func (s *DocumentStore) write(collection string, fn func(txn *badger.Txn, seq uint64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := s.nextSeq(collection)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(txn, seq)
	})
}

func (s *DocumentStore) nextSeq(collection string) (uint64, error) {
	seq, ok := s.sequences[collection]
	if !ok {
		var err error
		seq, err = s.db.GetSequence(sequenceKey(collection), sequenceBandwidth)
		if err != nil {
			return 0, fmt.Errorf("sequence for %s: %w", collection, err)
		}
		s.sequences[collection] = seq
	}
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// Sequence starts at zero, which is reserved for "from the beginning".
	return n + 1, nil
}

func (s *DocumentStore) logChange(txn *badger.Txn, collection string, seq uint64,
	changeType domain.ChangeType, doc domain.Document) error {
	b, err := encodeChange(changeType, doc)
	if err != nil {
		return err
	}
	return txn.Set(changeKey(collection, seq), b)
}

func readDocument(txn *badger.Txn, collection, id string) (map[string]any, error) {
	item, err := txn.Get(docKey(collection, id))
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	err = item.Value(func(v []byte) error {
		fields, err = decodeFields(v)
		return err
	})
	return fields, err
}
