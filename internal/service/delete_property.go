package service

import (
	"context"
	"fmt"
	"log/slog"

	"landwand-api/internal/planner"
	"landwand-api/internal/schema"
)

// DeleteProperty removes a property whose deletion is guarded by the
// database's before_delete_property trigger, which rejects the DELETE
// while a dependent listing is still Active.
//
// The sequence is CheckExists -> DeactivateDependents -> DeleteRecord.
// The two mutations are separate statements, not one transaction: a fault
// between them leaves the listings deactivated and the property intact,
// which is an accepted inconsistency window. The delete fails cleanly if
// any dependents remain active, so a deactivation failure is logged and
// the sequence continues to the delete, where the trigger surfaces the
// real outcome.
func (s *Service) DeleteProperty(ctx context.Context, propertyID int64) Result {
	// CheckExists: capture the identity before mutating anything. A
	// missing record stops the sequence with no statements issued against
	// the dependents table.
	existing := s.fetchByKey(ctx, schema.Property, propertyID, schema.Property.KeyColumn, "title")
	if existing == nil {
		return notFound(fmt.Sprintf("Property with ID %d not found", propertyID))
	}
	title, _ := existing["title"].(string)

	// DeactivateDependents: flip all Active listings for this property to
	// Inactive so the guard trigger no longer blocks the delete.
	deactivate, err := planner.PlanUpdateWhere(
		schema.ListingTable,
		map[string]any{schema.ListingStatusCol: schema.ListingInactive},
		[]string{schema.ListingStatusCol},
		map[string]any{
			schema.ListingPropertyKey: propertyID,
			schema.ListingStatusCol:   schema.ListingActive,
		},
		[]string{schema.ListingPropertyKey, schema.ListingStatusCol},
	)
	if err != nil {
		return serverError("Failed to delete property: " + err.Error())
	}
	if result := s.exec.Mutate(ctx, deactivate); !result.Success {
		// Best effort: if dependents stayed active the delete below fails
		// cleanly with the trigger's diagnostic.
		s.logger.Log(ctx, slog.LevelWarn, "failed to deactivate dependent listings",
			slog.Int64("property_id", propertyID),
			slog.String("error", result.Err.Error()),
		)
	}

	// DeleteRecord: cascading foreign keys remove the remaining dependent
	// rows. Any rejection, the guard trigger included, is reported with
	// its diagnostic code preserved.
	del, err := planner.PlanDelete(schema.Property.Table, schema.Property.KeyColumn, propertyID)
	if err != nil {
		return serverError("Failed to delete property: " + err.Error())
	}
	result := s.exec.Mutate(ctx, del)
	if !result.Success {
		return mutationFailure("Failed to delete property", result.Err)
	}

	s.logger.Log(ctx, slog.LevelInfo, "property deleted",
		slog.Int64("property_id", propertyID),
		slog.String("title", title),
	)
	return success(
		fmt.Sprintf("Property %q deleted successfully", title),
		map[string]any{schema.Property.KeyColumn: propertyID},
	)
}
