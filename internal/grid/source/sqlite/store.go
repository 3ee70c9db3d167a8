package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dshills/keygrid/internal/grid/history"
	"github.com/dshills/keygrid/internal/grid/source"
	"github.com/dshills/keygrid/internal/logging"
)

// Errors
var (
	ErrNoTable = errors.New("table not found or has no columns")
	ErrClosed  = errors.New("store closed")
)

// DefaultQueueSize is the number of mirror writes buffered before ApplyEdit blocks.
const DefaultQueueSize = 256

// Failure reports a transaction the database refused.
type Failure struct {
	ID  uuid.UUID
	Err error
}

func (f Failure) Error() string {
	return fmt.Sprintf("mirror %s: %v", f.ID, f.Err)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize sets the mirror queue capacity.
func WithQueueSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithValidator installs a view-side validator, run before anything is queued.
func WithValidator(v source.Validator) Option {
	return func(s *Store) {
		s.viewOpts = append(s.viewOpts, source.WithValidator(v))
	}
}

// WithCreate creates the table with columns and seeds it with rows when it
// does not exist yet.
func WithCreate(columns []string, rows [][]string) Option {
	return func(s *Store) {
		s.seedColumns = columns
		s.seedRows = rows
	}
}

type stmt struct {
	query string
	args  []any
}

type job struct {
	id    uuid.UUID
	epoch uint64
	stmts []stmt

	// barrier is closed when the worker reaches the job.
	barrier chan struct{}
}

// Store is a source.Source over one SQLite table. ApplyEdit, RevertEdit
// and Resume must be called from one goroutine.
type Store struct {
	db      *sql.DB
	table   string
	columns []string

	view    *source.Table
	rowids  []int64
	nextRow int64

	jobs     chan job
	failures chan Failure
	epoch    atomic.Uint64
	failed   atomic.Uint64
	done     chan struct{}
	closed   bool

	queueSize   int
	viewOpts    []source.Option
	seedColumns []string
	seedRows    [][]string
	logger      *logging.Logger
}

// Open loads table from db and starts the mirror worker.
func Open(ctx context.Context, db *sql.DB, table string, opts ...Option) (*Store, error) {
	s := &Store{
		db:        db,
		table:     table,
		queueSize: DefaultQueueSize,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("sqlite").With("table", table)

	if len(s.seedColumns) > 0 {
		if err := CreateTable(ctx, db, table, s.seedColumns, s.seedRows); err != nil {
			return nil, err
		}
	}
	cols, err := s.tableColumns(ctx)
	if err != nil {
		return nil, err
	}
	s.columns = cols
	s.view = source.NewTable(cols, nil, s.viewOpts...)
	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	s.jobs = make(chan job, s.queueSize)
	s.failures = make(chan Failure, 8)
	s.done = make(chan struct{})
	s.epoch.Store(1)
	go s.run()
	return s, nil
}

// OpenFile opens the database at path and loads table. The caller closes
// the returned database after closing the store.
func OpenFile(ctx context.Context, path, table string, opts ...Option) (*Store, *sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)
	s, err := Open(ctx, db, table, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, db, nil
}

// Tables lists the user tables in db by name.
func Tables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateTable creates table with TEXT columns if it does not exist and
// inserts rows when it was empty.
func CreateTable(ctx context.Context, db *sql.DB, table string, columns []string, rows [][]string) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM "+quoteIdent(table)).Scan(&n); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if n > 0 || len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := insertQuery(table, columns, false)
	for _, r := range rows {
		args := make([]any, len(columns))
		for i := range columns {
			var v string
			if i < len(r) {
				v = r[i]
			}
			args[i] = nullable(v)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (s *Store) tableColumns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(s.table)))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", s.table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTable, s.table)
	}
	return cols, nil
}

// reload replaces the view with the table contents ordered by rowid.
func (s *Store) reload(ctx context.Context) error {
	quoted := make([]string, len(s.columns))
	for i, c := range s.columns {
		quoted[i] = quoteIdent(c)
	}
	q := fmt.Sprintf("SELECT rowid, %s FROM %s ORDER BY rowid", strings.Join(quoted, ", "), quoteIdent(s.table))
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.table, err)
	}
	defer rows.Close()

	var (
		data   [][]string
		rowids []int64
	)
	vals := make([]any, len(s.columns)+1)
	ptrs := make([]any, len(vals))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scan %s: %w", s.table, err)
		}
		id, _ := vals[0].(int64)
		rowids = append(rowids, id)
		r := make([]string, len(s.columns))
		for i := range s.columns {
			r[i] = text(vals[i+1])
		}
		data = append(data, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.view.Load(data)
	s.rowids = rowids
	s.nextRow = 1
	if n := len(rowids); n > 0 {
		s.nextRow = slices.Max(rowids) + 1
	}
	return nil
}

// RowCount returns the number of rows in the view.
func (s *Store) RowCount() int { return s.view.RowCount() }

// ColumnCount returns the number of columns.
func (s *Store) ColumnCount() int { return s.view.ColumnCount() }

// ColumnNames returns the table's column names.
func (s *Store) ColumnNames() []string { return slices.Clone(s.columns) }

// CellValue returns a cell from the view.
func (s *Store) CellValue(row, col int) string { return s.view.CellValue(row, col) }

// IsMarked reports whether row is marked for deletion. Marks are not persisted.
func (s *Store) IsMarked(row int) bool { return s.view.IsMarked(row) }

// MarkedRows returns the marked rows.
func (s *Store) MarkedRows() []int { return s.view.MarkedRows() }

// ApplyEdit applies tx to the view and queues its mirror write.
func (s *Store) ApplyEdit(tx *history.Transaction) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.view.ApplyEdit(tx); err != nil {
		return err
	}
	stmts := s.track(tx)
	if len(stmts) == 0 {
		return nil
	}
	s.jobs <- job{id: tx.ID, epoch: s.epoch.Load(), stmts: stmts}
	return nil
}

// RevertEdit undoes an applied transaction in the view only.
func (s *Store) RevertEdit(applied *history.Transaction) error {
	inv := applied.Inverse()
	if err := s.view.ApplyEdit(inv); err != nil {
		return err
	}
	s.track(inv)
	return nil
}

// Resume waits for queued writes to drain, reloads the view from the
// database and starts a new epoch so later edits are mirrored again.
func (s *Store) Resume(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		return err
	}
	if err := s.reload(ctx); err != nil {
		return err
	}
	s.epoch.Add(1)
	s.logger.Info("mirror resumed", "epoch", int64(s.epoch.Load()))
	return nil
}

// Sync blocks until every queued write has been processed or skipped.
func (s *Store) Sync(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	barrier := make(chan struct{})
	select {
	case s.jobs <- job{barrier: barrier}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Failures delivers mirror failures. Each failure should be answered with
// a rewind of the failed transaction followed by Resume.
func (s *Store) Failures() <-chan Failure {
	return s.failures
}

// Close drains the queue and stops the worker.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.jobs)
	<-s.done
	return nil
}

// track turns each diff into SQL and keeps rowids parallel to the view.
func (s *Store) track(tx *history.Transaction) []stmt {
	var out []stmt
	for _, d := range tx.Diffs {
		switch d := d.(type) {
		case history.CellDiff:
			out = append(out, stmt{
				query: fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?", quoteIdent(s.table), quoteIdent(s.columns[d.Col])),
				args:  []any{nullable(d.New), s.rowids[d.Row]},
			})
		case history.RowDiff:
			switch {
			case d.IsInsert():
				id := s.nextRow
				s.nextRow++
				s.rowids = slices.Insert(s.rowids, d.Index, id)
				args := []any{id}
				for _, v := range d.New {
					args = append(args, nullable(v))
				}
				out = append(out, stmt{query: insertQuery(s.table, s.columns, true), args: args})
			case d.IsDelete():
				id := s.rowids[d.Index]
				s.rowids = slices.Delete(s.rowids, d.Index, d.Index+1)
				out = append(out, stmt{
					query: fmt.Sprintf("DELETE FROM %s WHERE rowid = ?", quoteIdent(s.table)),
					args:  []any{id},
				})
			default:
				sets := make([]string, len(s.columns))
				args := make([]any, 0, len(s.columns)+1)
				for i, c := range s.columns {
					sets[i] = quoteIdent(c) + " = ?"
					args = append(args, nullable(d.New[i]))
				}
				args = append(args, s.rowids[d.Index])
				out = append(out, stmt{
					query: fmt.Sprintf("UPDATE %s SET %s WHERE rowid = ?", quoteIdent(s.table), strings.Join(sets, ", ")),
					args:  args,
				})
			}
		case history.MarkDiff:
			// view only
		}
	}
	return out
}

func (s *Store) run() {
	defer close(s.done)
	for j := range s.jobs {
		if j.barrier != nil {
			close(j.barrier)
			continue
		}
		s.process(j)
	}
}

func (s *Store) process(j job) {
	if j.epoch <= s.failed.Load() {
		s.logger.Debug("skipping write after failure", "tx", j.id)
		return
	}
	if err := s.write(j); err != nil {
		s.failed.Store(j.epoch)
		s.logger.Warn("mirror write failed", "tx", j.id, "error", err)
		s.failures <- Failure{ID: j.id, Err: err}
		return
	}
	s.logger.Debug("mirrored", "tx", j.id, "statements", len(j.stmts))
}

func (s *Store) write(j job) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, st := range j.stmts {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func insertQuery(table string, columns []string, withRowID bool) string {
	names := make([]string, 0, len(columns)+1)
	marks := make([]string, 0, len(columns)+1)
	if withRowID {
		names = append(names, "rowid")
		marks = append(marks, "?")
	}
	for _, c := range columns {
		names = append(names, quoteIdent(c))
		marks = append(marks, "?")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

var (
	_ source.Source    = (*Store)(nil)
	_ source.RowMarker = (*Store)(nil)
	_ source.Reverter  = (*Store)(nil)
	_ source.Resumer   = (*Store)(nil)
	_ source.Columns   = (*Store)(nil)
)
