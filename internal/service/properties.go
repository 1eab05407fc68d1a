package service

import (
	"context"
	"fmt"

	"landwand-api/internal/planner"
	"landwand-api/internal/schema"
	"landwand-api/internal/validate"
)

// propertyFilterColumns is the allow-list of filterable property columns.
var propertyFilterColumns = []string{"property_type"}

// FilterProperties returns property rows matching the allow-listed
// filters, newest first, optionally capped by limit.
func (s *Service) FilterProperties(ctx context.Context, filters map[string]any, limit *int) Result {
	plan, err := planner.PlanFilterSelect(schema.Property.Table, filters, propertyFilterColumns, "posted_date DESC", limit)
	if err != nil {
		return serverError("Failed to fetch data: " + err.Error())
	}
	result := s.exec.Select(ctx, plan)
	return successList("Data retrieved successfully", result.Rows)
}

// GetProperty returns a single property by key.
func (s *Service) GetProperty(ctx context.Context, propertyID int64) Result {
	plan, err := planner.PlanSelectByKey(schema.Property.Table, schema.Property.KeyColumn, propertyID)
	if err != nil {
		return serverError("Failed to fetch data: " + err.Error())
	}
	row, ok := s.exec.SelectOne(ctx, plan)
	if !ok {
		return notFound(fmt.Sprintf("Property with ID %d not found", propertyID))
	}
	return success("Property retrieved successfully", row)
}

// CreateProperty sanitizes and validates the input and inserts a new
// property with a server-assigned posting date. The database's insert
// triggers fire as a side effect; the pipeline only guarantees the
// statement it sends is valid.
func (s *Service) CreateProperty(ctx context.Context, raw schema.InputRecord) Result {
	record := validate.Sanitize(raw, schema.Property.StringFieldNames())
	if outcome := validate.ValidateRecord(record, schema.Property, validate.ModeCreate); !outcome.Valid {
		return validationError(outcome.Message)
	}

	columns := []string{"title", "description", "property_type", "price", "location_id"}
	values := []any{
		record["title"],
		record["description"], // nil when absent; column is nullable
		record["property_type"],
		record["price"],
		record["location_id"],
	}
	plan, err := planner.PlanInsert(schema.Property.Table, columns, values, []planner.ServerDefault{
		{Column: "posted_date", Expr: "CURDATE()"},
	})
	if err != nil {
		return serverError("Failed to create property: " + err.Error())
	}

	result := s.exec.Mutate(ctx, plan)
	if !result.Success {
		return mutationFailure("Failed to create property", result.Err)
	}

	var created map[string]any
	if result.LastInsertID != nil {
		created = s.fetchByKey(ctx, schema.Property, *result.LastInsertID)
	}
	return success("Property created successfully", created)
}

// UpdateProperty applies a partial update to an existing property.
func (s *Service) UpdateProperty(ctx context.Context, propertyID int64, raw schema.InputRecord) Result {
	if s.fetchByKey(ctx, schema.Property, propertyID, schema.Property.KeyColumn) == nil {
		return notFound(fmt.Sprintf("Property with ID %d not found", propertyID))
	}

	record := validate.Sanitize(raw, schema.Property.StringFieldNames())
	if outcome := validate.ValidateRecord(record, schema.Property, validate.ModeUpdate); !outcome.Valid {
		return validationError(outcome.Message)
	}

	plan, err := planner.PlanPartialUpdate(schema.Property.Table, schema.Property.FieldNames(), record, schema.Property.KeyColumn, propertyID)
	if err != nil {
		if err == planner.ErrNoFieldsToUpdate {
			return validationError("No valid fields to update")
		}
		return serverError("Failed to update property: " + err.Error())
	}

	result := s.exec.Mutate(ctx, plan)
	if !result.Success {
		return mutationFailure("Failed to update property", result.Err)
	}
	return success("Property updated successfully", s.fetchByKey(ctx, schema.Property, propertyID))
}

// AggregateProperties returns per-type count and price statistics.
func (s *Service) AggregateProperties(ctx context.Context) Result {
	plan, err := planner.PlanAggregateByType(schema.Property.Table, "property_type", "price")
	if err != nil {
		return serverError("Failed to get aggregates: " + err.Error())
	}
	result := s.exec.Select(ctx, plan)
	return successList("Aggregated data retrieved successfully", result.Rows)
}
