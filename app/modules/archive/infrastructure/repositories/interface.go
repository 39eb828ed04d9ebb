package archivedb

import (
	"context"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

// Repository is the append-only archive of finished days. It only grows or is
// cleared wholesale.
type Repository interface {
	Append(ctx context.Context, db bun.IDB, snapshot sessiondomain.DaySnapshot) error
	List(ctx context.Context, db bun.IDB) ([]sessiondomain.DaySnapshot, error)
	Clear(ctx context.Context, db bun.IDB) (int, error)
}
