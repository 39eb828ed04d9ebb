package archivedb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

// ArchiveDBImpl is the bun-backed archive repository.
type ArchiveDBImpl struct {
	DB *bun.DB
}

func (r *ArchiveDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

// Append writes one snapshot. Conflicting ids are ignored so a replayed
// session.finished event cannot duplicate an archive entry.
func (r *ArchiveDBImpl) Append(ctx context.Context, db bun.IDB, snapshot sessiondomain.DaySnapshot) error {
	_, err := r.conn(db).NewInsert().
		Model(FromDomain(snapshot)).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to append day snapshot: %w", err)
	}
	return nil
}

// List returns all snapshots, oldest first.
func (r *ArchiveDBImpl) List(ctx context.Context, db bun.IDB) ([]sessiondomain.DaySnapshot, error) {
	var rows []DaySnapshot
	err := r.conn(db).NewSelect().Model(&rows).Order("finished_at ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list day snapshots: %w", err)
	}
	snapshots := make([]sessiondomain.DaySnapshot, len(rows))
	for i := range rows {
		snapshots[i] = rows[i].ToDomain()
	}
	return snapshots, nil
}

// Clear wipes the archive and reports how many snapshots were dropped.
func (r *ArchiveDBImpl) Clear(ctx context.Context, db bun.IDB) (int, error) {
	result, err := r.conn(db).NewDelete().
		Model((*DaySnapshot)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear archive: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}
