package service

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landwand-api/internal/dbexec"
	"landwand-api/internal/logging"
	"landwand-api/internal/schema"
)

// newTestService wires a service over a mocked database. Queries are
// matched by exact SQL text so statement shape regressions surface here.
func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logging.NewLogger(logging.Config{Level: "error"})
	return New(dbexec.New(dbexec.NewPoolSource(db), logger), logger), mock
}

func TestListUsers(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT * FROM `user_account` ORDER BY join_date DESC").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name"}).
			AddRow(2, "Bob").
			AddRow(1, "Alice"))

	res := svc.ListUsers(context.Background())

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "Users retrieved successfully", res.Message)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "Bob", res.Records[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	res := svc.GetUser(context.Background(), 99)

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "User with ID 99 not found", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_HappyPath(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `user_id` FROM `user_account` WHERE `email` = ?").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	mock.ExpectExec("INSERT INTO `user_account` (`name`,`email`,`phone`,`password`,`buyer`,`seller`,`join_date`) VALUES (?,?,?,?,?,?,CURDATE())").
		WithArgs("Alice", "alice@example.com", "9876543210", "s3cret!", float64(1), float64(0)).
		WillReturnResult(sqlmock.NewResult(7, 1))

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "join_date"}).
			AddRow(7, "Alice", "2026-08-28"))

	res := svc.CreateUser(context.Background(), schema.InputRecord{
		"name":     "  Alice  ",
		"email":    "alice@example.com",
		"phone":    "9876543210",
		"password": "s3cret!",
		"buyer":    float64(1),
		"seller":   float64(0),
	})

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "User created successfully", res.Message)
	require.NotNil(t, res.Record)
	assert.Equal(t, "2026-08-28", res.Record["join_date"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DefaultsForOmittedOptionals(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `user_id` FROM `user_account` WHERE `email` = ?").
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	mock.ExpectExec("INSERT INTO `user_account` (`name`,`email`,`phone`,`password`,`buyer`,`seller`,`join_date`) VALUES (?,?,?,?,?,?,CURDATE())").
		WithArgs("Bob", "bob@example.com", "0000000000", "default_password", 0, 0).
		WillReturnResult(sqlmock.NewResult(8, 1))

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(8))

	res := svc.CreateUser(context.Background(), schema.InputRecord{
		"name":  "Bob",
		"email": "bob@example.com",
	})

	assert.Equal(t, StatusSuccess, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_ValidationFailureIssuesNoStatements(t *testing.T) {
	svc, mock := newTestService(t)

	res := svc.CreateUser(context.Background(), schema.InputRecord{
		"name": "Alice",
	})

	assert.Equal(t, StatusValidationError, res.Status)
	assert.Equal(t, "Missing required field: email", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmailConflictBeforeInsert(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `user_id` FROM `user_account` WHERE `email` = ?").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3))

	res := svc.CreateUser(context.Background(), schema.InputRecord{
		"name":  "Alice",
		"email": "alice@example.com",
	})

	assert.Equal(t, StatusConflict, res.Status)
	assert.Equal(t, "User with this email already exists", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateRaceSurfacesAsConflict(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `user_id` FROM `user_account` WHERE `email` = ?").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	mock.ExpectExec("INSERT INTO `user_account` (`name`,`email`,`phone`,`password`,`buyer`,`seller`,`join_date`) VALUES (?,?,?,?,?,?,CURDATE())").
		WillReturnError(mysqlError(1062, "Duplicate entry 'alice@example.com' for key 'email'"))

	res := svc.CreateUser(context.Background(), schema.InputRecord{
		"name":  "Alice",
		"email": "alice@example.com",
	})

	assert.Equal(t, StatusConflict, res.Status)
	assert.Contains(t, res.Message, "Duplicate entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	res := svc.UpdateUser(context.Background(), 42, schema.InputRecord{"phone": "9876543210"})

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "User with ID 42 not found", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_PartialUpdateTouchesOnlyProvidedFields(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	mock.ExpectExec("UPDATE `user_account` SET `phone` = ? WHERE `user_id` = ?").
		WithArgs("9876543210", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "phone"}).AddRow(7, "9876543210"))

	res := svc.UpdateUser(context.Background(), 7, schema.InputRecord{"phone": "9876543210"})

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "User updated successfully", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmailCheckExcludesOwnRow(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	mock.ExpectQuery("SELECT `user_id` FROM `user_account` WHERE `email` = ? AND `user_id` <> ?").
		WithArgs("new@example.com", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3))

	res := svc.UpdateUser(context.Background(), 7, schema.InputRecord{"email": "new@example.com"})

	assert.Equal(t, StatusConflict, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NoRecognizedFields(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT * FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	res := svc.UpdateUser(context.Background(), 7, schema.InputRecord{"favourite_color": "teal"})

	assert.Equal(t, StatusValidationError, res.Status)
	assert.Equal(t, "No valid fields to update", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `user_id`, `name` FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name"}).AddRow(7, "Alice"))

	mock.ExpectExec("DELETE FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res := svc.DeleteUser(context.Background(), 7)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "User Alice deleted successfully", res.Message)
	assert.Equal(t, int64(7), res.Record["user_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `user_id`, `name` FROM `user_account` WHERE `user_id` = ?").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	res := svc.DeleteUser(context.Background(), 99)

	assert.Equal(t, StatusNotFound, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
