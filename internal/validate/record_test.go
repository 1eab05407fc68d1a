package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"landwand-api/internal/schema"
)

func validUser() schema.InputRecord {
	return schema.InputRecord{
		"name":     "Alice Smith",
		"email":    "alice@example.com",
		"phone":    "9876543210",
		"password": "s3cret!",
		"buyer":    float64(1),
		"seller":   float64(0),
	}
}

func validProperty() schema.InputRecord {
	return schema.InputRecord{
		"title":         "2BHK near the lake",
		"description":   "Bright corner unit",
		"property_type": "Apartment",
		"price":         450000.0,
		"location_id":   float64(3),
	}
}

func TestValidateRecord_NilRecord(t *testing.T) {
	got := ValidateRecord(nil, schema.User, ModeCreate)
	assert.False(t, got.Valid)
	assert.Equal(t, "Invalid data format", got.Message)
}

func TestValidateRecord_CreateHappyPath(t *testing.T) {
	assert.True(t, ValidateRecord(validUser(), schema.User, ModeCreate).Valid)
	assert.True(t, ValidateRecord(validProperty(), schema.Property, ModeCreate).Valid)
}

func TestValidateRecord_MissingRequired(t *testing.T) {
	record := validUser()
	delete(record, "email")

	got := ValidateRecord(record, schema.User, ModeCreate)
	assert.False(t, got.Valid)
	assert.Equal(t, "Missing required field: email", got.Message)
}

func TestValidateRecord_BlankRequiredCountsAsMissing(t *testing.T) {
	record := validUser()
	record["name"] = "   "

	got := ValidateRecord(record, schema.User, ModeCreate)
	assert.False(t, got.Valid)
	assert.Equal(t, "Missing required field: name", got.Message)
}

func TestValidateRecord_FirstFailureWins(t *testing.T) {
	// name precedes email in the schema, so the name failure is reported
	// even though the email is also malformed.
	record := validUser()
	record["name"] = "A"
	record["email"] = "not-an-email"

	got := ValidateRecord(record, schema.User, ModeCreate)
	assert.False(t, got.Valid)
	assert.Equal(t, "Name: Value must be at least 2 characters long", got.Message)
}

func TestValidateRecord_EmailFormat(t *testing.T) {
	record := validUser()
	record["email"] = "alice-at-example.com"

	got := ValidateRecord(record, schema.User, ModeCreate)
	assert.Equal(t, "Invalid email format", got.Message)
}

func TestValidateRecord_OptionalPhoneChecked(t *testing.T) {
	record := validUser()
	record["phone"] = "12345"

	got := ValidateRecord(record, schema.User, ModeCreate)
	assert.Equal(t, "Invalid phone number format (minimum 10 digits required)", got.Message)
}

func TestValidateRecord_OptionalBlankSkipped(t *testing.T) {
	record := validUser()
	record["phone"] = ""
	record["password"] = nil

	assert.True(t, ValidateRecord(record, schema.User, ModeCreate).Valid)
}

func TestValidateRecord_BuyerFlagBounds(t *testing.T) {
	record := validUser()
	record["buyer"] = float64(2)

	got := ValidateRecord(record, schema.User, ModeCreate)
	assert.Equal(t, "Buyer must not exceed 1", got.Message)
}

func TestValidateRecord_UpdateAllowsPartial(t *testing.T) {
	record := schema.InputRecord{"phone": "9876543210"}
	assert.True(t, ValidateRecord(record, schema.User, ModeUpdate).Valid)
}

func TestValidateRecord_UpdateStillChecksProvided(t *testing.T) {
	record := schema.InputRecord{"email": "broken"}

	got := ValidateRecord(record, schema.User, ModeUpdate)
	assert.False(t, got.Valid)
	assert.Equal(t, "Invalid email format", got.Message)
}

func TestValidateRecord_PropertyTypeEnum(t *testing.T) {
	record := validProperty()
	record["property_type"] = "Castle"

	got := ValidateRecord(record, schema.Property, ModeCreate)
	assert.Equal(t, "Property_type must be one of: Apartment, House, Villa, Plot, Commercial", got.Message)
}

func TestValidateRecord_PriceRange(t *testing.T) {
	record := validProperty()
	record["price"] = -10.0

	got := ValidateRecord(record, schema.Property, ModeCreate)
	assert.Equal(t, "Price must be at least 0", got.Message)
}

func TestValidateRecord_PriceType(t *testing.T) {
	record := validProperty()
	record["price"] = "expensive"

	got := ValidateRecord(record, schema.Property, ModeCreate)
	assert.Equal(t, "Price must be a valid number", got.Message)
}

func TestValidateRecord_DescriptionTooLong(t *testing.T) {
	record := validProperty()
	long := make([]rune, 1001)
	for i := range long {
		long[i] = 'x'
	}
	record["description"] = string(long)

	got := ValidateRecord(record, schema.Property, ModeCreate)
	assert.Equal(t, "Description: Value must not exceed 1000 characters", got.Message)
}
