package contact

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	ioutils "github.com/handiism/sjt-catalog/internal/io"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	mail_to    TEXT NOT NULL,
	mail_from  TEXT NOT NULL,
	reply_to   TEXT NOT NULL,
	subject    TEXT NOT NULL,
	body       TEXT NOT NULL,
	sent_at    INTEGER
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox(sent_at, created_at);
`

// Outbox is a Mailer that stores messages in SQLite for later delivery.
type Outbox struct {
	db *sql.DB
}

// OpenOutbox opens (creating if needed) the outbox database at path.
// Use ":memory:" for a throwaway outbox.
func OpenOutbox(path string) (*Outbox, error) {
	if path != ":memory:" {
		if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("outbox dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open outbox: %w", err)
	}
	// A single connection keeps :memory: databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(outboxSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("outbox schema: %w", err)
	}

	return &Outbox{db: db}, nil
}

// Close closes the database.
func (o *Outbox) Close() error {
	return o.db.Close()
}

// Send stores msg as pending.
func (o *Outbox) Send(ctx context.Context, msg Message) error {
	_, err := o.db.ExecContext(ctx,
		`INSERT INTO outbox (id, created_at, mail_to, mail_from, reply_to, subject, body) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.CreatedAt.UnixMilli(), msg.To, msg.From, msg.ReplyTo, msg.Subject, msg.Body,
	)
	if err != nil {
		return fmt.Errorf("store message %s: %w", msg.ID, err)
	}
	return nil
}

// Pending returns unsent messages, oldest first.
func (o *Outbox) Pending(ctx context.Context) ([]Message, error) {
	rows, err := o.db.QueryContext(ctx,
		`SELECT id, created_at, mail_to, mail_from, reply_to, subject, body
		 FROM outbox WHERE sent_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var created int64
		if err := rows.Scan(&m.ID, &created, &m.To, &m.From, &m.ReplyTo, &m.Subject, &m.Body); err != nil {
			return nil, err
		}
		m.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkSent records that a delivery process handled message id.
func (o *Outbox) MarkSent(ctx context.Context, id string, at time.Time) error {
	res, err := o.db.ExecContext(ctx, `UPDATE outbox SET sent_at = ? WHERE id = ? AND sent_at IS NULL`, at.UnixMilli(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("message %s not pending", id)
	}
	return nil
}
