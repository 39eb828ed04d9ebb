package sessiondb

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

// FakeRepository is an in-memory session store for service tests. Stored
// sessions round-trip through JSON so tests also exercise the persisted
// shapes, including nil scores.
type FakeRepository struct {
	mu      sync.Mutex
	session *sessiondomain.Session
	trace   []string

	GetActiveFunc func(ctx context.Context, db bun.IDB) (*sessiondomain.Session, error)
	SaveFunc      func(ctx context.Context, db bun.IDB, session *sessiondomain.Session) error
	DeleteFunc    func(ctx context.Context, db bun.IDB) error
}

func NewFakeRepository() *FakeRepository { return &FakeRepository{} }

// Trace returns the method names invoked so far.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeRepository) record(name string) {
	f.mu.Lock()
	f.trace = append(f.trace, name)
	f.mu.Unlock()
}

func clone(session *sessiondomain.Session) *sessiondomain.Session {
	data, err := json.Marshal(session)
	if err != nil {
		panic(err)
	}
	out := &sessiondomain.Session{}
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
	return out
}

func (f *FakeRepository) GetActive(ctx context.Context, db bun.IDB) (*sessiondomain.Session, error) {
	f.record("GetActive")
	if f.GetActiveFunc != nil {
		return f.GetActiveFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, ErrNoActiveSession
	}
	return clone(f.session), nil
}

func (f *FakeRepository) Save(ctx context.Context, db bun.IDB, session *sessiondomain.Session) error {
	f.record("Save")
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, db, session)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = clone(session)
	return nil
}

func (f *FakeRepository) Delete(ctx context.Context, db bun.IDB) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	return nil
}
