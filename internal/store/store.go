package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/carescan/proforma/internal/domain"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by GetRun for unknown ids.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one archived run as listed by ListRuns.
type RunSummary struct {
	ID             string
	CreatedAt      time.Time
	Source         string
	StartDate      time.Time
	EndDate        time.Time
	TotalRevenue   decimal.Decimal
	TotalExpenses  decimal.Decimal
	TotalNetIncome decimal.Decimal
	BreakevenYear  *int
	WarningCount   int
}

// SQLiteStore archives proforma runs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates the database file if needed and migrates it.
func Open(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const (
	// fixed width so created_at sorts chronologically as text
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
	dateLayout = "2006-01-02"
)

// SaveRun stores a result and its annual summary in one transaction.
// source names the workbook the run was computed from.
func (s *SQLiteStore) SaveRun(ctx context.Context, source string, r *domain.ProformaResult) error {
	if r.Metadata.RunID == "" {
		return fmt.Errorf("save run: result has no run id")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var breakeven sql.NullInt64
	if r.Metrics.BreakevenYear != nil {
		breakeven = sql.NullInt64{Int64: int64(*r.Metrics.BreakevenYear), Valid: true}
	}
	createdAt := r.Metadata.CompletedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, source, start_date, end_date, total_revenue, total_expenses, total_net_income, breakeven_year, warning_count, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Metadata.RunID,
		createdAt.UTC().Format(timeLayout),
		source,
		r.Metadata.StartDate.Format(dateLayout),
		r.Metadata.EndDate.Format(dateLayout),
		r.Metrics.TotalRevenue.String(),
		r.Metrics.TotalExpenses.String(),
		r.Metrics.TotalNetIncome.String(),
		breakeven,
		len(r.Warnings),
		string(payload),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, a := range r.AnnualSummary {
		if _, err := tx.ExecContext(ctx, `INSERT INTO annual_summary
			(run_id, year, total_revenue, total_expenses, net_income, cumulative_net_income)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.Metadata.RunID, a.Year,
			a.TotalRevenue.String(), a.TotalExpenses.String(), a.NetIncome.String(), a.CumulativeNetIncome.String(),
		); err != nil {
			return fmt.Errorf("insert annual summary %d: %w", a.Year, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, source, start_date, end_date,
		total_revenue, total_expenses, total_net_income, breakeven_year, warning_count
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			rs                     RunSummary
			created, start, end    string
			revenue, expenses, net string
			breakeven              sql.NullInt64
		)
		if err := rows.Scan(&rs.ID, &created, &rs.Source, &start, &end,
			&revenue, &expenses, &net, &breakeven, &rs.WarningCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if rs.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("run %s created_at: %w", rs.ID, err)
		}
		if rs.StartDate, err = time.Parse(dateLayout, start); err != nil {
			return nil, fmt.Errorf("run %s start_date: %w", rs.ID, err)
		}
		if rs.EndDate, err = time.Parse(dateLayout, end); err != nil {
			return nil, fmt.Errorf("run %s end_date: %w", rs.ID, err)
		}
		if rs.TotalRevenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("run %s total_revenue: %w", rs.ID, err)
		}
		if rs.TotalExpenses, err = decimal.NewFromString(expenses); err != nil {
			return nil, fmt.Errorf("run %s total_expenses: %w", rs.ID, err)
		}
		if rs.TotalNetIncome, err = decimal.NewFromString(net); err != nil {
			return nil, fmt.Errorf("run %s total_net_income: %w", rs.ID, err)
		}
		if breakeven.Valid {
			y := int(breakeven.Int64)
			rs.BreakevenYear = &y
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// GetRun loads the full archived result of a run.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*domain.ProformaResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT result_json FROM runs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	var r domain.ProformaResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &r, nil
}

// DeleteRun removes a run and its annual rows.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM annual_summary WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("delete annual summary: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}
