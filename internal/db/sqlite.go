package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tubescribe/backend/internal/auth"
	"github.com/tubescribe/backend/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Conn exposes the underlying handle for the job queue.
func (d *Database) Conn() *sql.DB {
	return d.db
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'admin',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		video_id TEXT NOT NULL,
		params TEXT NOT NULL,
		progress REAL DEFAULT 0,
		stage TEXT,
		result TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		started_at DATETIME,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS transcripts (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL,
		language TEXT NOT NULL,
		source TEXT NOT NULL,
		segment_count INTEGER NOT NULL,
		srt_path TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SaveTranscript records a completed request; id is the job ID.
func (d *Database) SaveTranscript(t *models.Transcript) error {
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO transcripts (id, video_id, language, source, segment_count, srt_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.VideoID, t.Language, t.Source, t.SegmentCount, t.SRTPath, time.Now(),
	)
	return err
}

// ListTranscripts returns completed transcripts, newest first.
func (d *Database) ListTranscripts() ([]*models.Transcript, error) {
	rows, err := d.db.Query(`
		SELECT id, video_id, language, source, segment_count, srt_path, created_at
		FROM transcripts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Transcript
	for rows.Next() {
		t := &models.Transcript{}
		var srtPath sql.NullString
		if err := rows.Scan(&t.ID, &t.VideoID, &t.Language, &t.Source, &t.SegmentCount, &srtPath, &t.CreatedAt); err != nil {
			return nil, err
		}
		if srtPath.Valid {
			t.SRTPath = srtPath.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTranscript looks up one completed transcript by job ID.
func (d *Database) GetTranscript(id string) (*models.Transcript, error) {
	t := &models.Transcript{}
	var srtPath sql.NullString
	err := d.db.QueryRow(`
		SELECT id, video_id, language, source, segment_count, srt_path, created_at
		FROM transcripts WHERE id = ?`, id,
	).Scan(&t.ID, &t.VideoID, &t.Language, &t.Source, &t.SegmentCount, &srtPath, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if srtPath.Valid {
		t.SRTPath = srtPath.String
	}
	return t, nil
}
