package archivedb

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

// FakeRepository is an in-memory archive for service tests.
type FakeRepository struct {
	mu        sync.Mutex
	snapshots []sessiondomain.DaySnapshot
	trace     []string

	AppendFunc func(ctx context.Context, db bun.IDB, snapshot sessiondomain.DaySnapshot) error
	ListFunc   func(ctx context.Context, db bun.IDB) ([]sessiondomain.DaySnapshot, error)
	ClearFunc  func(ctx context.Context, db bun.IDB) (int, error)
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

func (f *FakeRepository) Append(ctx context.Context, db bun.IDB, snapshot sessiondomain.DaySnapshot) error {
	f.record("Append")
	if f.AppendFunc != nil {
		return f.AppendFunc(ctx, db, snapshot)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.snapshots {
		if existing.ID == snapshot.ID {
			return nil
		}
	}
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *FakeRepository) List(ctx context.Context, db bun.IDB) ([]sessiondomain.DaySnapshot, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sessiondomain.DaySnapshot(nil), f.snapshots...), nil
}

func (f *FakeRepository) Clear(ctx context.Context, db bun.IDB) (int, error) {
	f.record("Clear")
	if f.ClearFunc != nil {
		return f.ClearFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.snapshots)
	f.snapshots = nil
	return n, nil
}
