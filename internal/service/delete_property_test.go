package service

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func mysqlError(number uint16, message string) *mysql.MySQLError {
	return &mysql.MySQLError{Number: number, Message: message}
}

// The deletion sequence must run existence check, dependent deactivation,
// and delete in that order; sqlmock enforces statement order by default.
func TestDeleteProperty_FullSequence(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `property_id`, `title` FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "title"}).
			AddRow(12, "Lake House"))

	mock.ExpectExec("UPDATE `listing` SET `listing_status` = ? WHERE `property_id` = ? AND `listing_status` = ?").
		WithArgs("Inactive", int64(12), "Active").
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec("DELETE FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res := svc.DeleteProperty(context.Background(), 12)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, `Property "Lake House" deleted successfully`, res.Message)
	assert.Equal(t, int64(12), res.Record["property_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProperty_NotFoundIssuesNoMutations(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `property_id`, `title` FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "title"}))

	res := svc.DeleteProperty(context.Background(), 99)

	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "Property with ID 99 not found", res.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProperty_DeactivationFailureStillAttemptsDelete(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `property_id`, `title` FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "title"}).
			AddRow(12, "Lake House"))

	mock.ExpectExec("UPDATE `listing` SET `listing_status` = ? WHERE `property_id` = ? AND `listing_status` = ?").
		WithArgs("Inactive", int64(12), "Active").
		WillReturnError(mysqlError(1205, "Lock wait timeout exceeded"))

	mock.ExpectExec("DELETE FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res := svc.DeleteProperty(context.Background(), 12)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProperty_TriggerRejectionSurfacesDiagnostic(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT `property_id`, `title` FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"property_id", "title"}).
			AddRow(12, "Lake House"))

	mock.ExpectExec("UPDATE `listing` SET `listing_status` = ? WHERE `property_id` = ? AND `listing_status` = ?").
		WithArgs("Inactive", int64(12), "Active").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("DELETE FROM `property` WHERE `property_id` = ?").
		WithArgs(int64(12)).
		WillReturnError(mysqlError(1644, "Cannot delete property with active listings"))

	res := svc.DeleteProperty(context.Background(), 12)

	assert.Equal(t, StatusServerError, res.Status)
	assert.Contains(t, res.Message, "Cannot delete property with active listings")
	assert.Contains(t, res.Message, "code 1644")
	assert.NoError(t, mock.ExpectationsWereMet())
}
