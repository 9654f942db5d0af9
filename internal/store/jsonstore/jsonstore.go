// Package jsonstore persists the whole folder document as one JSON blob.
//
// Every mutation rewrites the full document; there is no merge, no
// locking and no version check, so the last writer wins.
package jsonstore

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/clarolist/internal/model"
)

// Store loads and saves the document through a Backend.
type Store struct {
	backend Backend
	logger  *log.Logger

	mu     sync.Mutex
	rev    uint64
	subs   map[int]chan Update
	nextID int
}

// Update is a saved document tagged with the revision of the save that
// produced it. Revisions increase by one on every Save.
type Update struct {
	Rev uint64
	Doc model.Document
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fallback and write-failure reports.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  log.New(io.Discard),
		subs:    make(map[int]chan Update),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location reports where the document lives.
func (s *Store) Location() string { return s.backend.Location() }

// LoadStrict reads and decodes the document without any fallback.
// Errors wrap ErrNotExist or ErrCorrupt when those apply.
func (s *Store) LoadStrict(ctx context.Context) (model.Document, error) {
	b, err := s.backend.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// Load returns the persisted document. When nothing is stored, or the
// stored blob cannot be decoded, the default folders are seeded and
// written through before being returned. A corrupt blob is copied aside
// first when the backend supports it.
//
// Any other read failure returns the defaults without writing them.
func (s *Store) Load(ctx context.Context) model.Document {
	b, err := s.backend.Read(ctx)
	if err == nil {
		var doc model.Document
		if doc, err = Decode(b); err == nil {
			return doc
		}
	}
	switch {
	case errors.Is(err, ErrNotExist):
		s.logger.Info("no document found, seeding defaults", "location", s.Location())
	case errors.Is(err, ErrCorrupt):
		s.logger.Warn("document is corrupt, seeding defaults", "location", s.Location(), "err", err)
		s.backup(ctx, b)
	default:
		s.logger.Error("document read failed, using defaults without saving", "location", s.Location(), "err", err)
		return model.Seed()
	}
	seed := model.Seed()
	s.Save(ctx, seed)
	return seed
}

func (s *Store) backup(ctx context.Context, b []byte) {
	bk, ok := s.backend.(Backuper)
	if !ok {
		return
	}
	where, err := bk.Backup(ctx, b)
	if err != nil {
		s.logger.Error("could not keep corrupt document", "location", s.Location(), "err", err)
		return
	}
	s.logger.Warn("corrupt document kept", "backup", where)
}

// SaveStrict overwrites the stored document and reports failures.
func (s *Store) SaveStrict(ctx context.Context, doc model.Document) error {
	b, err := Encode(doc)
	if err != nil {
		return err
	}
	err = s.backend.Write(ctx, b)
	s.publish(doc)
	return err
}

// Save overwrites the stored document. A failed write is logged and
// otherwise ignored: the caller's in-memory document stays authoritative.
func (s *Store) Save(ctx context.Context, doc model.Document) {
	if err := s.SaveStrict(ctx, doc); err != nil {
		s.logger.Error("document write failed", "location", s.Location(), "err", err)
		return
	}
	s.logger.Debug("document saved", "location", s.Location(), "folders", len(doc), "tasks", doc.TaskCount())
}

// Revision returns the revision of the most recent Save, zero before any.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Subscribe returns a channel receiving every document passed to Save.
// Sends never block: the channel holds only the newest update, replacing
// one the subscriber has not read yet. cancel closes the channel.
func (s *Store) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Update, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) publish(doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rev++
	for _, ch := range s.subs {
		offer(ch, Update{Rev: s.rev, Doc: doc.Clone()})
	}
}

// offer puts u in ch, evicting an unread older update.
func offer(ch chan Update, u Update) {
	for {
		select {
		case ch <- u:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
