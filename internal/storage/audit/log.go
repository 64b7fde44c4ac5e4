package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/LeJamon/goassetd/internal/core/amount"
	"github.com/LeJamon/goassetd/internal/core/payment"
)

// Entry is one committed ledger operation.
type Entry struct {
	Seq    int64     `json:"seq"`
	Time   time.Time `json:"time"`
	Issuer string    `json:"issuer"`
	Op     string    `json:"op"`
	Brand  string    `json:"brand"`
	Amount string    `json:"amount"`
}

// Log is an append-only record of every mutating ledger operation,
// backed by SQLite. One Log serves all issuers in a process.
type Log struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	seq    INTEGER PRIMARY KEY AUTOINCREMENT,
	time   INTEGER NOT NULL,
	issuer TEXT    NOT NULL,
	op     TEXT    NOT NULL,
	brand  TEXT    NOT NULL,
	amount TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_issuer ON audit_log(issuer, seq);
`

// Open opens (creating if needed) an audit log at path. Use ":memory:"
// for an ephemeral log.
func Open(ctx context.Context, path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids table-lock errors under concurrent recorders.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Append records one operation.
func (l *Log) Append(ctx context.Context, issuer string, op payment.Op, amt amount.Amount) error {
	encoded, err := amount.EncodeValue(amt.Value)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		return err
	}

	_, err = l.db.ExecContext(ctx,
		"INSERT INTO audit_log (time, issuer, op, brand, amount) VALUES (?, ?, ?, ?, ?)",
		time.Now().UnixMicro(), issuer, string(op), amt.Brand.AllegedName(), string(raw))
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Recorder returns a payment.Recorder that appends to this log under
// the given issuer name. Errors are reported through onError since the
// ledger's commit path cannot fail on audit problems; pass nil to drop
// them.
func (l *Log) Recorder(issuer string, onError func(error)) payment.Recorder {
	return func(op payment.Op, amt amount.Amount) {
		if err := l.Append(context.Background(), issuer, op, amt); err != nil && onError != nil {
			onError(err)
		}
	}
}

// ByIssuer returns all entries for one issuer in append order.
func (l *Log) ByIssuer(ctx context.Context, issuer string) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT seq, time, issuer, op, brand, amount FROM audit_log WHERE issuer = ? ORDER BY seq",
		issuer)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e     Entry
			stamp int64
		)
		if err := rows.Scan(&e.Seq, &stamp, &e.Issuer, &e.Op, &e.Brand, &e.Amount); err != nil {
			return nil, err
		}
		e.Time = time.UnixMicro(stamp)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of entries recorded for one issuer.
func (l *Log) Count(ctx context.Context, issuer string) (int64, error) {
	var n int64
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM audit_log WHERE issuer = ?", issuer).Scan(&n)
	return n, err
}
