package planner

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"landwand-api/internal/sqlutil"
)

// ServerDefault is a server-computed column expression appended to an
// insert, such as a posting date of CURDATE(). The expression is fixed SQL
// owned by the caller's code path and never derived from client input.
type ServerDefault struct {
	Column string
	Expr   string
}

// PlanInsert builds an INSERT for the given columns and values plus any
// server-default expressions. Columns and values must match in length and
// order.
func PlanInsert(table string, columns []string, values []any, serverDefaults []ServerDefault) (SQLQuery, error) {
	if len(columns) != len(values) {
		return SQLQuery{}, fmt.Errorf("insert column count (%d) does not match value count (%d)", len(columns), len(values))
	}
	if len(columns) == 0 && len(serverDefaults) == 0 {
		return SQLQuery{}, fmt.Errorf("insert into %s has no columns", table)
	}

	allCols := make([]string, 0, len(columns)+len(serverDefaults))
	allVals := make([]any, 0, len(columns)+len(serverDefaults))
	for i, col := range columns {
		allCols = append(allCols, sqlutil.QuoteIdentifier(col))
		allVals = append(allVals, values[i])
	}
	for _, def := range serverDefaults {
		allCols = append(allCols, sqlutil.QuoteIdentifier(def.Column))
		allVals = append(allVals, sq.Expr(def.Expr))
	}

	query, args, err := sq.Insert(sqlutil.QuoteIdentifier(table)).
		Columns(allCols...).
		Values(allVals...).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanPartialUpdate builds an UPDATE touching only the allow-listed fields
// present in the record, iterated in allow-list order so the fragment
// order is deterministic. The key predicate is always appended last and
// never comes from the record itself. Returns ErrNoFieldsToUpdate when
// none of the allowed fields are present.
func PlanPartialUpdate(table string, allowed []string, record map[string]any, keyColumn string, keyValue any) (SQLQuery, error) {
	update := sq.Update(sqlutil.QuoteIdentifier(table))

	found := 0
	for _, col := range allowed {
		val, ok := record[col]
		if !ok {
			continue
		}
		found++
		update = update.Set(sqlutil.QuoteIdentifier(col), val)
	}
	if found == 0 {
		return SQLQuery{}, ErrNoFieldsToUpdate
	}

	query, args, err := update.
		Where(sq.Eq{sqlutil.QuoteIdentifier(keyColumn): keyValue}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanUpdateWhere builds an UPDATE that sets fixed columns for all rows
// matching the given equality predicates. Used by the deletion sequence to
// flip dependent listing rows to Inactive.
func PlanUpdateWhere(table string, set map[string]any, setOrder []string, where map[string]any, whereOrder []string) (SQLQuery, error) {
	if len(setOrder) == 0 {
		return SQLQuery{}, fmt.Errorf("update on %s has no set columns", table)
	}

	update := sq.Update(sqlutil.QuoteIdentifier(table))
	for _, col := range setOrder {
		update = update.Set(sqlutil.QuoteIdentifier(col), set[col])
	}
	for _, col := range whereOrder {
		update = update.Where(sq.Eq{sqlutil.QuoteIdentifier(col): where[col]})
	}

	query, args, err := update.PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanDelete builds a single-row DELETE by key column.
func PlanDelete(table, keyColumn string, keyValue any) (SQLQuery, error) {
	query, args, err := sq.Delete(sqlutil.QuoteIdentifier(table)).
		Where(sq.Eq{sqlutil.QuoteIdentifier(keyColumn): keyValue}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}
