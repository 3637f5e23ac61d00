package ur_arm

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// ArchivedProgram is one generated program kept for replay and diagnosis. A
// program is archived before the send is attempted, so a failed send can be
// retried from the archive without regenerating. CreatedAt carries the
// database's own timestamp text.
type ArchivedProgram struct {
	ID        int64
	Pattern   string
	Params    string
	Program   string
	CreatedAt string
}

// Archive persists generated programs in a local sqlite database.
type Archive struct {
	db *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS programs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	pattern TEXT NOT NULL,
	params TEXT NOT NULL,
	program TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_programs_pattern ON programs(pattern);
`

// OpenArchive opens or creates the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "initialize archive schema in %s", path)
	}
	return &Archive{db: db}, nil
}

// SaveProgram stores a generated program and returns its archive id.
func (a *Archive) SaveProgram(pattern, params, program string) (int64, error) {
	res, err := a.db.Exec(
		`INSERT INTO programs (pattern, params, program) VALUES (?, ?, ?)`,
		pattern, params, program,
	)
	if err != nil {
		return 0, errors.Wrapf(err, "archive program for pattern %s", pattern)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "read archived program id")
	}
	return id, nil
}

// Program fetches one archived program by id.
func (a *Archive) Program(id int64) (ArchivedProgram, error) {
	var p ArchivedProgram
	err := a.db.QueryRow(
		`SELECT id, pattern, params, program, created_at FROM programs WHERE id = ?`, id,
	).Scan(&p.ID, &p.Pattern, &p.Params, &p.Program, &p.CreatedAt)
	if err != nil {
		return ArchivedProgram{}, errors.Wrapf(err, "fetch archived program %d", id)
	}
	return p, nil
}

// Recent returns up to limit archived programs, newest first. The program
// text is omitted to keep listings small.
func (a *Archive) Recent(limit int) ([]ArchivedProgram, error) {
	rows, err := a.db.Query(
		`SELECT id, pattern, params, created_at FROM programs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list archived programs")
	}
	defer rows.Close()

	var out []ArchivedProgram
	for rows.Next() {
		var p ArchivedProgram
		if err := rows.Scan(&p.ID, &p.Pattern, &p.Params, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan archived program")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (a *Archive) Close() error {
	return a.db.Close()
}
