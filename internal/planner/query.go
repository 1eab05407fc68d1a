package planner

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"landwand-api/internal/sqlutil"
)

// PlanFilterSelect builds a SELECT over the table with one equality
// predicate per filter entry. Filter keys must appear in the allowed list;
// an unknown key is rejected before any SQL is built. The orderBy clause
// comes from server code, never from a client. A limit, when present, must
// be non-negative; it is embedded in the SQL text because MySQL does not
// reliably bind LIMIT as a parameter.
func PlanFilterSelect(table string, filters map[string]any, allowed []string, orderBy string, limit *int) (SQLQuery, error) {
	builder := sq.Select("*").From(sqlutil.QuoteIdentifier(table))

	// Iterate the allow-list, not the map, so predicate order is
	// deterministic.
	seen := 0
	for _, col := range allowed {
		val, ok := filters[col]
		if !ok {
			continue
		}
		seen++
		builder = builder.Where(sq.Eq{sqlutil.QuoteIdentifier(col): val})
	}
	if seen != len(filters) {
		for key := range filters {
			if !contains(allowed, key) {
				return SQLQuery{}, fmt.Errorf("filter field %q is not allowed", key)
			}
		}
	}

	if orderBy != "" {
		builder = builder.OrderBy(orderBy)
	}

	if limit != nil {
		if *limit < 0 {
			return SQLQuery{}, fmt.Errorf("limit must be a non-negative integer, got %d", *limit)
		}
		builder = builder.Limit(uint64(*limit))
	}

	query, args, err := builder.PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanSelectByKey builds a single-row lookup by the table's key column.
func PlanSelectByKey(table, keyColumn string, keyValue any, columns ...string) (SQLQuery, error) {
	selected := []string{"*"}
	if len(columns) > 0 {
		selected = make([]string, len(columns))
		for i, col := range columns {
			selected[i] = sqlutil.QuoteIdentifier(col)
		}
	}

	query, args, err := sq.Select(selected...).
		From(sqlutil.QuoteIdentifier(table)).
		Where(sq.Eq{sqlutil.QuoteIdentifier(keyColumn): keyValue}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanAggregateByType builds the per-type price aggregate over the
// property table: count, sum, average, min, and max grouped by
// property_type.
func PlanAggregateByType(table, typeColumn, valueColumn string) (SQLQuery, error) {
	typeCol := sqlutil.QuoteIdentifier(typeColumn)
	valueCol := sqlutil.QuoteIdentifier(valueColumn)

	query, args, err := sq.Select(
		typeCol,
		"COUNT(*) AS total_count",
		fmt.Sprintf("SUM(%s) AS total_value", valueCol),
		fmt.Sprintf("AVG(%s) AS average_price", valueCol),
		fmt.Sprintf("MIN(%s) AS min_price", valueCol),
		fmt.Sprintf("MAX(%s) AS max_price", valueCol),
	).
		From(sqlutil.QuoteIdentifier(table)).
		GroupBy(typeCol).
		OrderBy("total_count DESC").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

// PlanUniqueCheck builds a lookup for rows already holding value in the
// given column, optionally excluding one key (for updates that keep the
// row's own value). Used for duplicate-email prechecks.
func PlanUniqueCheck(table, column string, value any, keyColumn string, excludeKey any) (SQLQuery, error) {
	builder := sq.Select(sqlutil.QuoteIdentifier(keyColumn)).
		From(sqlutil.QuoteIdentifier(table)).
		Where(sq.Eq{sqlutil.QuoteIdentifier(column): value})
	if excludeKey != nil {
		builder = builder.Where(sq.NotEq{sqlutil.QuoteIdentifier(keyColumn): excludeKey})
	}

	query, args, err := builder.PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return SQLQuery{}, err
	}
	return SQLQuery{SQL: query, Args: args}, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
