package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/myrjola/mattepaint/internal/errors"
	"log/slog"
)

// schemaObject is a table, index or trigger as recorded in sqlite_schema.
type schemaObject struct {
	Type  string
	Name  string
	Table string
	SQL   string
}

func (o schemaObject) key() string {
	return o.Type + ":" + o.Name
}

// migrate ensures that the db schema matches the target schema defined in schema.sql.
//
// The schema is declarative. The target schema is created in a temporary in-memory database and compared against
// sqlite_schema of the live database:
//
//  1. objects not present in the target are dropped,
//  2. objects whose definition differs from the target are dropped and created again,
//  3. objects missing from the live database are created.
//
// Objects are tables, indexes and triggers.
//
// Rebuilt tables lose their rows. This is fine for the catalog because all of it is reseeded from fixtures.sql
// right after the migration.
func (db *Database) migrate(ctx context.Context, schemaDefinition string) error {
	var (
		err     error
		target  []schemaObject
		current []schemaObject
	)

	if target, err = db.targetSchema(ctx, schemaDefinition); err != nil {
		return errors.Wrap(err, "read target schema")
	}

	// Foreign keys cannot be toggled inside a transaction.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign key validation")
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON"); fkErr != nil {
			fkErr = errors.Wrap(fkErr, "re-enable foreign key validation")
			db.logger.LogAttrs(ctx, slog.LevelError, "foreign keys left disabled", errors.SlogError(fkErr))
		}
	}()

	var tx *sql.Tx
	if tx, err = db.ReadWrite.BeginTx(ctx, nil); err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", errors.SlogError(rbErr))
		}
	}()

	if current, err = querySchema(ctx, tx); err != nil {
		return errors.Wrap(err, "read current schema")
	}

	targetByKey := make(map[string]schemaObject, len(target))
	for _, obj := range target {
		targetByKey[obj.key()] = obj
	}
	remaining := make(map[string]schemaObject, len(current))
	for _, obj := range current {
		remaining[obj.key()] = obj
	}

	// Dependent objects go first. A dropped table takes its indexes and triggers with it.
	for _, objType := range []string{"trigger", "index", "table"} {
		for _, obj := range current {
			if obj.Type != objType {
				continue
			}
			want, inTarget := targetByKey[obj.key()]
			if inTarget && want.SQL == obj.SQL {
				continue
			}
			db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
				slog.String("type", obj.Type), slog.String("name", obj.Name), slog.Bool("rebuild", inTarget))
			stmt := fmt.Sprintf(`DROP %s IF EXISTS "%s"`, obj.Type, obj.Name)
			if _, err = tx.ExecContext(ctx, stmt); err != nil {
				return errors.Wrap(err, "drop schema object", slog.String("query", stmt))
			}
			delete(remaining, obj.key())
			if obj.Type == "table" {
				for _, dependent := range current {
					if dependent.Type != "table" && dependent.Table == obj.Name {
						delete(remaining, dependent.key())
					}
				}
			}
		}
	}

	// Target objects are in creation order so tables come before the objects that reference them.
	for _, obj := range target {
		if _, ok := remaining[obj.key()]; ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object",
			slog.String("type", obj.Type), slog.String("name", obj.Name))
		if _, err = tx.ExecContext(ctx, obj.SQL); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("query", obj.SQL))
		}
	}

	if _, err = tx.ExecContext(ctx, "PRAGMA foreign_key_check"); err != nil {
		return errors.Wrap(err, "foreign key check")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	return nil
}

// targetSchema applies schemaDefinition to a throwaway in-memory database and returns the resulting schema.
func (db *Database) targetSchema(ctx context.Context, schemaDefinition string) ([]schemaObject, error) {
	schemaTarget, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "open schema target database")
	}
	defer func() {
		if closeErr := schemaTarget.Close(); closeErr != nil {
			closeErr = errors.Wrap(closeErr, "close schema target database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target database",
				errors.SlogError(closeErr))
		}
	}()
	// Every connection to :memory: is a separate database.
	schemaTarget.SetMaxOpenConns(1)

	var tx *sql.Tx
	if tx, err = schemaTarget.BeginTx(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "start schema target transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if schemaDefinition != "" {
		if _, err = tx.ExecContext(ctx, schemaDefinition); err != nil {
			return nil, errors.Wrap(err, "apply schema definition")
		}
	}
	return querySchema(ctx, tx)
}

// querySchema lists user tables, explicitly created indexes and triggers in creation order.
func querySchema(ctx context.Context, tx *sql.Tx) ([]schemaObject, error) {
	var (
		objects []schemaObject
		rows    *sql.Rows
		err     error
	)
	if rows, err = tx.QueryContext(ctx, `SELECT type, name, tbl_name, sql
FROM sqlite_schema
WHERE type IN ('table', 'index', 'trigger')
  AND sql IS NOT NULL
  AND name NOT LIKE 'sqlite_%'
ORDER BY rowid`); err != nil {
		return nil, errors.Wrap(err, "query schema")
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var obj schemaObject
		if err = rows.Scan(&obj.Type, &obj.Name, &obj.Table, &obj.SQL); err != nil {
			return nil, errors.Wrap(err, "scan schema object")
		}
		objects = append(objects, obj)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return objects, nil
}
