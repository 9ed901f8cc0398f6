/*
Package sqlite provides a SQLite-backed payslip archive.

PURPOSE:
  Keeps a record of every payslip the engine produced so a report can be
  re-rendered or audited later. Employees themselves are not persisted:
  they are rebuilt from the stored snapshot through the factory.

KEY TABLES:
  payslips: one row per calculation, money stored as TEXT decimals,
            the full snapshot stored as JSON

APPEND-ONLY:
  Payslips are never updated. A corrected calculation is a new payslip.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of the driver's own locking.

USAGE:
  store, err := sqlite.New("./data/payslips.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  slip := payroll.NewPayslip(employee)
  err = store.SavePayslip(ctx, slip)

SEE ALSO:
  - payroll/snapshot.go: Snapshot JSON format
  - factory/employee.go: FromSnapshot rebuilds an employee
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// timeLayout has fixed-width fractions so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var _ payroll.PayslipStore = (*Store)(nil)

// Store implements the payslip archive using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS payslips (
		id TEXT PRIMARY KEY,
		employee_type TEXT NOT NULL,
		name TEXT NOT NULL,
		hours INTEGER NOT NULL,
		on_vacation INTEGER NOT NULL,
		monthly_pay TEXT NOT NULL,
		vacation_bonus TEXT NOT NULL,
		total_pay TEXT NOT NULL,
		snapshot_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payslips_created_at
		ON payslips(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_payslips_name
		ON payslips(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PAYSLIPS
// =============================================================================

// SavePayslip inserts a payslip. IDs are unique; saving twice fails.
func (s *Store) SavePayslip(ctx context.Context, p payroll.Payslip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapJSON, err := json.Marshal(p.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	// One offset for every row, or created_at stops sorting as text.
	p.CreatedAt = p.CreatedAt.UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payslips (id, employee_type, name, hours, on_vacation,
			monthly_pay, vacation_bonus, total_pay, snapshot_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Type, p.Name, p.Hours, p.OnVacation,
		p.MonthlyPay.String(), p.VacationBonus.String(), p.TotalPay.String(),
		string(snapJSON), p.CreatedAt.Format(timeLayout),
	)
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return fmt.Errorf("save payslip %s: %w", p.ID, generic.ErrDuplicatePayslip)
	}
	if err != nil {
		return fmt.Errorf("save payslip %s: %w", p.ID, err)
	}
	return nil
}

// GetPayslip retrieves a payslip by ID. Returns nil, nil when absent.
func (s *Store) GetPayslip(ctx context.Context, id string) (*payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectPayslip+" WHERE id = ?", id)
	p, err := scanPayslip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPayslips returns the newest payslips first. limit <= 0 means all.
func (s *Store) ListPayslips(ctx context.Context, limit int) ([]payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectPayslip + " ORDER BY created_at DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

const selectPayslip = `
	SELECT id, employee_type, name, hours, on_vacation,
		monthly_pay, vacation_bonus, total_pay, snapshot_json, created_at
	FROM payslips`

type scanner interface {
	Scan(dest ...any) error
}

func scanPayslip(sc scanner) (*payroll.Payslip, error) {
	var p payroll.Payslip
	var monthly, bonus, total, snap, createdAt string
	err := sc.Scan(&p.ID, &p.Type, &p.Name, &p.Hours, &p.OnVacation,
		&monthly, &bonus, &total, &snap, &createdAt)
	if err != nil {
		return nil, err
	}

	if p.MonthlyPay, err = generic.NewMoney(monthly); err != nil {
		return nil, err
	}
	if p.VacationBonus, err = generic.NewMoney(bonus); err != nil {
		return nil, err
	}
	if p.TotalPay, err = generic.NewMoney(total); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(snap), &p.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot of payslip %s: %w", p.ID, err)
	}
	if p.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("decode created_at of payslip %s: %w", p.ID, err)
	}
	return &p, nil
}
