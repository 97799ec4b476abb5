package roster

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteFetcher reads the roster from a members table:
//
//	CREATE TABLE members (
//	    dept     TEXT NOT NULL,
//	    name     TEXT,
//	    major    TEXT,
//	    role     TEXT,
//	    position INTEGER
//	);
type SQLiteFetcher struct {
	Path string
}

// Fetch opens the database read-only and groups rows by department.
func (f SQLiteFetcher) Fetch(ctx context.Context) (Roster, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", f.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open roster database: %w", err)
	}
	defer db.Close()
	return QueryRoster(ctx, db)
}

// QueryRoster reads every member row from db.
func QueryRoster(ctx context.Context, db *sql.DB) (Roster, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT dept, name, major, role
		FROM members
		ORDER BY dept, COALESCE(position, 0), rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	r := Roster{}
	for rows.Next() {
		var dept string
		var name, major, role sql.NullString
		if err := rows.Scan(&dept, &name, &major, &role); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		r[dept] = append(r[dept], Member{
			Name:  name.String,
			Major: major.String,
			Role:  role.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return r, nil
}
