package dbexec

import (
	"context"
	"log/slog"

	"landwand-api/internal/logging"
	"landwand-api/internal/planner"
)

// Row is one result row as a column-name-to-value mapping.
type Row = map[string]any

// SelectResult is the outcome of a select execution. Columns preserves the
// column order of the query; Rows preserves result-set order. Failures
// yield an empty result, never a fault.
type SelectResult struct {
	Columns []string
	Rows    []Row
}

// MutationResult is the outcome of an insert, update, or delete.
// LastInsertID is nil when the statement generated no key; it is never a
// pointer to zero.
type MutationResult struct {
	Success      bool
	AffectedRows int64
	LastInsertID *int64
	Err          *ExecError
}

// Executor runs planned statements on connections scoped to one call each.
type Executor struct {
	source Source
	logger *logging.Logger
}

// New creates an executor over the given connection source.
func New(source Source, logger *logging.Logger) *Executor {
	return &Executor{source: source, logger: logger}
}

// Select runs a select plan and collects all rows. The acquired connection
// and row handle are released on every exit path. Any database error is
// logged and surfaces as an empty result.
func (e *Executor) Select(ctx context.Context, plan planner.SQLQuery) SelectResult {
	conn, err := e.source.Acquire(ctx)
	if err != nil {
		e.log(ctx, "connection acquisition failed", plan.SQL, err)
		return SelectResult{Rows: []Row{}}
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		e.log(ctx, "select failed", plan.SQL, err)
		return SelectResult{Rows: []Row{}}
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		e.log(ctx, "row collection failed", plan.SQL, err)
		return SelectResult{Rows: []Row{}}
	}
	return result
}

// SelectOne runs a select plan and returns the first row, if any.
func (e *Executor) SelectOne(ctx context.Context, plan planner.SQLQuery) (Row, bool) {
	result := e.Select(ctx, plan)
	if len(result.Rows) == 0 {
		return nil, false
	}
	return result.Rows[0], true
}

// Mutate runs an insert, update, or delete plan. The connection is
// released before return on every path, and driver errors come back as
// classified ExecErrors rather than faults.
func (e *Executor) Mutate(ctx context.Context, plan planner.SQLQuery) MutationResult {
	conn, err := e.source.Acquire(ctx)
	if err != nil {
		e.log(ctx, "connection acquisition failed", plan.SQL, err)
		return MutationResult{Err: connectionUnavailable(err)}
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		e.log(ctx, "mutation failed", plan.SQL, err)
		return MutationResult{Err: translate(err)}
	}

	result := MutationResult{Success: true}
	if affected, err := res.RowsAffected(); err == nil {
		result.AffectedRows = affected
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		result.LastInsertID = &id
	}
	return result
}

func (e *Executor) log(ctx context.Context, msg, query string, err error) {
	logger := e.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger.Log(ctx, slog.LevelError, msg,
		slog.String("query", query),
		slog.String("error", err.Error()),
	)
}

// collectRows drains the result set into ordered rows keyed by column
// name. Byte slices from the driver are converted to strings so rows
// serialize cleanly.
func collectRows(rows Rows) (SelectResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return SelectResult{}, err
	}

	out := SelectResult{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return SelectResult{}, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return SelectResult{}, err
	}
	return out, nil
}
