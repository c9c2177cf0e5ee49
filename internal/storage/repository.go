package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"smartlife/internal/core"

	_ "modernc.org/sqlite"
)

const expenseColumns = `id, amount, category, note, date, created_at`

// SQLiteRepository is the expense store backed by a single SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	dsn string
}

// DSN builds the modernc connection string with busy timeout and WAL enabled.
func DSN(dbPath string) string {
	return "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, dsn: dsn}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return &core.StorageError{Op: "ping", Err: err}
	}
	return nil
}

// CreateExpense inserts a validated expense and returns the stored row.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO expenses (amount, category, note, date, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING `+expenseColumns,
		e.Amount, e.Category, e.Note, e.Date, createdAt)

	expense, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, &core.StorageError{Op: "insert expense", Err: err}
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", expense.ID,
		"amount", expense.Amount.String(),
		"category", expense.Category,
		"date", expense.Date.String())

	return expense, nil
}

// ListExpenses returns all expenses, newest date first. Rows sharing a date
// come back in reverse insertion order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	expenses := make([]core.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, &core.StorageError{Op: "scan expense", Err: err}
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StorageError{Op: "list expenses", Err: err}
	}
	return expenses, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, &core.NotFoundError{Resource: "Expense", ID: id}
	}
	if err != nil {
		return core.Expense{}, &core.StorageError{Op: "get expense", Err: err}
	}
	return e, nil
}

// DeleteExpense removes the row and reports how many rows were affected.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return 0, &core.StorageError{Op: "delete expense", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &core.StorageError{Op: "delete expense", Err: err}
	}
	return n, nil
}

func (r *SQLiteRepository) CountExpenses(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, &core.StorageError{Op: "count expenses", Err: err}
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(s rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		createdAt sqliteTime
	)
	if err := s.Scan(&e.ID, &e.Amount, &e.Category, &e.Note, &e.Date, &createdAt); err != nil {
		return core.Expense{}, err
	}
	e.CreatedAt = createdAt.Time
	return e, nil
}

// sqliteTime accepts the timestamp shapes SQLite hands back: our RFC3339
// text, CURRENT_TIMESTAMP text, or a value already converted by the driver.
type sqliteTime struct {
	time.Time
}

var sqliteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func (t *sqliteTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *sqliteTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// SchemaVersion reports the migration version applied to this database.
func (r *SQLiteRepository) SchemaVersion() (uint, bool, error) {
	return SchemaVersion(r.dsn)
}
