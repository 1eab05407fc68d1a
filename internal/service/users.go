package service

import (
	"context"
	"fmt"
	"log/slog"

	"landwand-api/internal/planner"
	"landwand-api/internal/schema"
	"landwand-api/internal/validate"
)

// Server-side defaults applied when a create request omits optional user
// fields, matching the columns' historical defaults.
const (
	defaultPhone    = "0000000000"
	defaultPassword = "default_password"
)

// ListUsers returns all user accounts, newest first.
func (s *Service) ListUsers(ctx context.Context) Result {
	plan, err := planner.PlanFilterSelect(schema.User.Table, nil, nil, "join_date DESC", nil)
	if err != nil {
		return serverError("Failed to fetch users: " + err.Error())
	}
	result := s.exec.Select(ctx, plan)
	return successList("Users retrieved successfully", result.Rows)
}

// GetUser returns a single user account by key.
func (s *Service) GetUser(ctx context.Context, userID int64) Result {
	plan, err := planner.PlanSelectByKey(schema.User.Table, schema.User.KeyColumn, userID)
	if err != nil {
		return serverError("Failed to fetch user: " + err.Error())
	}
	row, ok := s.exec.SelectOne(ctx, plan)
	if !ok {
		return notFound(fmt.Sprintf("User with ID %d not found", userID))
	}
	return success("User retrieved successfully", row)
}

// CreateUser sanitizes and validates the input, rejects duplicate emails,
// and inserts a new user account with a server-assigned join date.
func (s *Service) CreateUser(ctx context.Context, raw schema.InputRecord) Result {
	record := validate.Sanitize(raw, schema.User.StringFieldNames())
	if outcome := validate.ValidateRecord(record, schema.User, validate.ModeCreate); !outcome.Valid {
		return validationError(outcome.Message)
	}

	email, _ := record.String("email")
	if taken, res := s.emailTaken(ctx, email, nil); res != nil {
		return *res
	} else if taken {
		return conflict("User with this email already exists")
	}

	columns := []string{"name", "email", "phone", "password", "buyer", "seller"}
	values := []any{
		record["name"],
		record["email"],
		valueOrDefault(record, "phone", defaultPhone),
		valueOrDefault(record, "password", defaultPassword),
		valueOrDefault(record, "buyer", 0),
		valueOrDefault(record, "seller", 0),
	}
	plan, err := planner.PlanInsert(schema.User.Table, columns, values, []planner.ServerDefault{
		{Column: "join_date", Expr: "CURDATE()"},
	})
	if err != nil {
		return serverError("Failed to create user: " + err.Error())
	}

	result := s.exec.Mutate(ctx, plan)
	if !result.Success {
		return mutationFailure("Failed to create user", result.Err)
	}

	var created map[string]any
	if result.LastInsertID != nil {
		created = s.fetchByKey(ctx, schema.User, *result.LastInsertID)
	}
	return success("User created successfully", created)
}

// UpdateUser applies a partial update to an existing user account. Fields
// absent from the input are left untouched.
func (s *Service) UpdateUser(ctx context.Context, userID int64, raw schema.InputRecord) Result {
	if s.fetchByKey(ctx, schema.User, userID) == nil {
		return notFound(fmt.Sprintf("User with ID %d not found", userID))
	}

	record := validate.Sanitize(raw, schema.User.StringFieldNames())
	if outcome := validate.ValidateRecord(record, schema.User, validate.ModeUpdate); !outcome.Valid {
		return validationError(outcome.Message)
	}

	if email, ok := record.String("email"); ok {
		if taken, res := s.emailTaken(ctx, email, userID); res != nil {
			return *res
		} else if taken {
			return conflict("User with this email already exists")
		}
	}

	plan, err := planner.PlanPartialUpdate(schema.User.Table, schema.User.FieldNames(), record, schema.User.KeyColumn, userID)
	if err != nil {
		if err == planner.ErrNoFieldsToUpdate {
			return validationError("No valid fields to update")
		}
		return serverError("Failed to update user: " + err.Error())
	}

	result := s.exec.Mutate(ctx, plan)
	if !result.Success {
		return mutationFailure("Failed to update user", result.Err)
	}
	return success("User updated successfully", s.fetchByKey(ctx, schema.User, userID))
}

// DeleteUser removes a user account, returning the captured identity for
// confirmation.
func (s *Service) DeleteUser(ctx context.Context, userID int64) Result {
	existing := s.fetchByKey(ctx, schema.User, userID, schema.User.KeyColumn, "name")
	if existing == nil {
		return notFound(fmt.Sprintf("User with ID %d not found", userID))
	}

	plan, err := planner.PlanDelete(schema.User.Table, schema.User.KeyColumn, userID)
	if err != nil {
		return serverError("Failed to delete user: " + err.Error())
	}
	result := s.exec.Mutate(ctx, plan)
	if !result.Success {
		return mutationFailure("Failed to delete user", result.Err)
	}

	name, _ := existing["name"].(string)
	s.logger.Log(ctx, slog.LevelInfo, "user deleted",
		slog.Int64("user_id", userID),
		slog.String("name", name),
	)
	return success(
		fmt.Sprintf("User %s deleted successfully", name),
		map[string]any{schema.User.KeyColumn: userID},
	)
}

// emailTaken checks whether another row already holds the email. A non-nil
// Result means the check itself could not be planned.
func (s *Service) emailTaken(ctx context.Context, email string, excludeKey any) (bool, *Result) {
	plan, err := planner.PlanUniqueCheck(schema.User.Table, "email", email, schema.User.KeyColumn, excludeKey)
	if err != nil {
		res := serverError("Failed to check email uniqueness: " + err.Error())
		return false, &res
	}
	_, taken := s.exec.SelectOne(ctx, plan)
	return taken, nil
}

// fetchByKey re-reads a row after a mutation so the response carries the
// persisted state, server-assigned columns included. Returns nil when the
// row is absent.
func (s *Service) fetchByKey(ctx context.Context, entity schema.RecordSchema, key int64, columns ...string) map[string]any {
	plan, err := planner.PlanSelectByKey(entity.Table, entity.KeyColumn, key, columns...)
	if err != nil {
		return nil
	}
	row, ok := s.exec.SelectOne(ctx, plan)
	if !ok {
		return nil
	}
	return row
}

func valueOrDefault(record schema.InputRecord, name string, fallback any) any {
	if v, ok := record[name]; ok && v != nil && v != "" {
		return v
	}
	return fallback
}
