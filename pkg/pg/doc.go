// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
//   - Config is populated from PG_* environment variables.
//   - Connect opens a *pgxpool.Pool and retries until the database answers a ping.
//   - OpenDB bridges the pool to database/sql for code written against *sql.DB.
//   - Migrate runs goose migrations from an fs.FS, usually an embed.FS.
//   - Healthcheck returns a readiness probe.
//
// Error helpers (IsNotFoundError, IsDuplicateKeyError, ConstraintName)
// classify driver errors without leaking pgconn types to callers.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, migrations.FS, ".", cfg, log); err != nil {
//	    return err
//	}
package pg
