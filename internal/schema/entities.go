package schema

// Listing status values used by the property deletion sequence. The
// database's before_delete_property trigger blocks deletion while a
// dependent listing is still Active.
const (
	ListingTable       = "listing"
	ListingStatusCol   = "listing_status"
	ListingActive      = "Active"
	ListingInactive    = "Inactive"
	ListingPropertyKey = "property_id"
)

// PropertyTypes is the allowed enum set for property_type, shared by
// create, update, and filter paths.
var PropertyTypes = []string{"Apartment", "House", "Villa", "Plot", "Commercial"}

// User is the mutable-field schema for the user_account table. The primary
// key and the server-assigned join_date are deliberately absent: clients
// may never supply them.
var User = RecordSchema{
	Table:     "user_account",
	KeyColumn: "user_id",
	Fields: []FieldSpec{
		{Name: "name", Kind: KindString, Required: true, MinLength: 2, MaxLength: 100},
		{Name: "email", Kind: KindString, Required: true, Pattern: PatternEmail},
		{Name: "phone", Kind: KindString, Pattern: PatternPhone},
		{Name: "password", Kind: KindString, MinLength: 6, MaxLength: 255},
		{Name: "buyer", Kind: KindInteger, MinValue: minPtr(0), MaxValue: minPtr(1)},
		{Name: "seller", Kind: KindInteger, MinValue: minPtr(0), MaxValue: minPtr(1)},
	},
}

// Property is the mutable-field schema for the property table. posted_date
// is server-assigned (CURDATE() at insert) and excluded here.
var Property = RecordSchema{
	Table:     "property",
	KeyColumn: "property_id",
	Fields: []FieldSpec{
		{Name: "title", Kind: KindString, Required: true, MinLength: 3, MaxLength: 200},
		{Name: "description", Kind: KindString, MinLength: 0, MaxLength: 1000},
		{Name: "property_type", Kind: KindEnum, Required: true, AllowedValues: PropertyTypes},
		{Name: "price", Kind: KindDecimal, Required: true, MinValue: minPtr(0), MaxValue: minPtr(1e9)},
		{Name: "location_id", Kind: KindInteger, Required: true, MinValue: minPtr(1)},
	},
}
