package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Message is one contact form submission.
type Message struct {
	ID        uuid.UUID `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	HTML      bool      `json:"html"`
	FromName  string    `json:"from_name,omitempty"`
	FromEmail string    `json:"from_email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Relayed   bool      `json:"relayed"`
}

// Store persists contact messages in sqlite.
type Store struct {
	db *sql.DB
}

const createMessages = `
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	recipient TEXT NOT NULL,
	subject TEXT NOT NULL,
	body TEXT NOT NULL,
	html INTEGER NOT NULL DEFAULT 0,
	from_name TEXT,
	from_email TEXT,
	created_at DATETIME NOT NULL,
	relayed INTEGER NOT NULL DEFAULT 0
)`

// OpenStore opens (creating if needed) the database at path. ":memory:"
// gives a private in-memory database.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps :memory: stable.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createMessages); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create messages table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts m, assigning an id and timestamp when missing.
func (s *Store) Save(ctx context.Context, m *Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, recipient, subject, body, html, from_name, from_email, created_at, relayed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID.String(), m.To, m.Subject, m.Body, m.HTML, m.FromName, m.FromEmail, m.CreatedAt, m.Relayed)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// MarkRelayed records that the message was delivered by mail.
func (s *Store) MarkRelayed(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET relayed = 1 WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("message not found: %s", id)
	}
	return nil
}

// List returns up to limit messages, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipient, subject, body, html, from_name, from_email, created_at, relayed
		FROM messages ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Message
	for rows.Next() {
		var (
			m                   Message
			id                  string
			fromName, fromEmail sql.NullString
		)
		if err := rows.Scan(&id, &m.To, &m.Subject, &m.Body, &m.HTML, &fromName, &fromEmail, &m.CreatedAt, &m.Relayed); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if m.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad message id %q: %w", id, err)
		}
		m.FromName = fromName.String
		m.FromEmail = fromEmail.String
		out = append(out, m)
	}
	return out, rows.Err()
}
