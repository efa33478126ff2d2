package storage

import (
	"context"
	"reflect"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type storageImpl struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *storageImpl {
	return &storageImpl{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *storageImpl) stmtBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// fields returns the comma-separated list of db-tagged struct fields.
func fields(data any) string {
	var s string
	r := reflect.TypeOf(data)
	for i := 0; i < r.NumField(); i++ {
		tag := r.Field(i).Tag.Get("db")
		if tag != "" {
			s += tag + ","
		}
	}
	return s[:len(s)-1]
}

const schema = `
CREATE TABLE IF NOT EXISTS subscriptions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	app_id       TEXT NOT NULL,
	owner_uid    TEXT NOT NULL,
	phone_number TEXT,
	status       TEXT NOT NULL,
	start_date   TIMESTAMP,
	expiry_date  TIMESTAMP NOT NULL,
	price        REAL,
	notes        TEXT,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_subscriptions_scope_expiry
	ON subscriptions (app_id, owner_uid, status, expiry_date);
`

// EnsureSchema creates the subscriptions table when it does not exist yet.
// The store is externally owned; this only covers fresh local databases.
func (s *storageImpl) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Ping reports store reachability for the readiness probe.
func (s *storageImpl) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
