package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	archivedb "github.com/ttv-club/matchday/app/modules/archive/infrastructure/repositories"
	rosterdb "github.com/ttv-club/matchday/app/modules/roster/infrastructure/repositories"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	"github.com/ttv-club/matchday/config"
)

// DBService bundles the bun connection and the module repositories.
type DBService struct {
	PlayerDB  *rosterdb.PlayerDBImpl
	SessionDB *sessiondb.SessionDBImpl
	ArchiveDB *archivedb.ArchiveDBImpl
	db        *bun.DB
}

// GetDB returns the underlying database handle.
func (s *DBService) GetDB() *bun.DB { return s.db }

// NewBunDBService connects to Postgres and initializes the repositories.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if err := createTables(ctx, db); err != nil {
		return nil, err
	}

	return &DBService{
		PlayerDB:  &rosterdb.PlayerDBImpl{DB: db},
		SessionDB: &sessiondb.SessionDBImpl{DB: db},
		ArchiveDB: &archivedb.ArchiveDBImpl{DB: db},
		db:        db,
	}, nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*rosterdb.Player)(nil),
		(*sessiondb.Session)(nil),
		(*archivedb.DaySnapshot)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	// Backs the service-level case-insensitive uniqueness check.
	_, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS players_lower_name_idx ON players (lower(name))").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create name index: %w", err)
	}
	return nil
}
