package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validManifest() *EntityManifest {
	return &EntityManifest{
		EntityID:    "Orders",
		DisplayName: "Orders",
		Module:      "sales",
		MenuCode:    120,
		ActionCode:  1200,
		Schema:      "erp",
		Table:       "orders",
		Routes:      DefaultRoutes("Orders"),
		Fields: []FieldManifest{
			{Name: "Id", Type: "int", IsPrimary: true, IsIdentity: true, IsRequired: true},
			{Name: "CustomerId", Type: "int", IsRequired: true, IsForeignKey: true,
				ForeignKey: &ForeignKeyInfo{Entity: "Customers", Table: "customers", Column: "id"}},
			{Name: "Note", Type: "string"},
		},
	}
}

func TestManifestValidate_Valid(t *testing.T) {
	assert.Empty(t, validManifest().Validate())
}

func TestManifestValidate_MissingRequiredAttributes(t *testing.T) {
	man := validManifest()
	man.EntityID = ""
	man.DisplayName = " "
	man.Table = ""
	errs := man.Validate()
	assert.Len(t, errs, 3)
}

func TestManifestValidate_AccessControlCodes(t *testing.T) {
	man := validManifest()
	man.MenuCode = 0
	man.ActionCode = -5
	errs := man.Validate()
	assert.Contains(t, errs, "menu code must be positive")
	assert.Contains(t, errs, "action code must be positive")
}

func TestManifestValidate_NoFields(t *testing.T) {
	man := validManifest()
	man.Fields = nil
	errs := man.Validate()
	assert.Contains(t, errs, "manifest must declare at least one field")
}

func TestFieldValidate_ForeignKeyWithoutInfo(t *testing.T) {
	field := FieldManifest{Name: "CustomerId", Type: "int", IsForeignKey: true}
	errs := field.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "CustomerId")
}

func TestFieldLookup_CaseInsensitive(t *testing.T) {
	man := validManifest()
	assert.NotNil(t, man.Field("customerid"))
	assert.NotNil(t, man.Field("NOTE"))
	assert.Nil(t, man.Field("email"))
}

func TestDefaultRoutes(t *testing.T) {
	routes := DefaultRoutes("Orders")
	assert.Equal(t, "/api/orders", routes.List)
	assert.Equal(t, "/api/orders/:id", routes.Get)
	assert.Equal(t, "/api/orders/batch", routes.BatchDelete)
}
