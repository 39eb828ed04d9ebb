package sessiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

// SessionDBImpl is the bun-backed session repository.
type SessionDBImpl struct {
	DB *bun.DB
}

func (r *SessionDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

// GetActive loads the single stored session, if any.
func (r *SessionDBImpl) GetActive(ctx context.Context, db bun.IDB) (*sessiondomain.Session, error) {
	session := &Session{}
	err := r.conn(db).NewSelect().Model(session).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}
	return session.ToDomain(), nil
}

// Save upserts the session row.
func (r *SessionDBImpl) Save(ctx context.Context, db bun.IDB, session *sessiondomain.Session) error {
	model := FromDomain(session)
	_, err := r.conn(db).NewInsert().
		Model(model).
		On("CONFLICT (id) DO UPDATE").
		Set("current_round = EXCLUDED.current_round").
		Set("finished = EXCLUDED.finished").
		Set("finished_at = EXCLUDED.finished_at").
		Set("participants = EXCLUDED.participants").
		Set("matches = EXCLUDED.matches").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete discards whatever session is stored.
func (r *SessionDBImpl) Delete(ctx context.Context, db bun.IDB) error {
	_, err := r.conn(db).NewDelete().
		Model((*Session)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
