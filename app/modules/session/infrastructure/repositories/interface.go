package sessiondb

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

var ErrNoActiveSession = errors.New("no active session")

// Repository stores the single active session. At most one session exists at
// a time; Save upserts it and Delete discards it.
type Repository interface {
	GetActive(ctx context.Context, db bun.IDB) (*sessiondomain.Session, error)
	Save(ctx context.Context, db bun.IDB, session *sessiondomain.Session) error
	Delete(ctx context.Context, db bun.IDB) error
}
