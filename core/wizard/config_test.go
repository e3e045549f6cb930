package wizard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		EntityID:   "Orders",
		EntityName: "Orders",
		Module:     "sales",
		GridLayout: GridLayout{
			Fields: []GridField{
				{Name: "Id", Label: "Id", Width: "auto", Visible: true, Searchable: true, Sortable: true, Order: 0},
				{Name: "Note", Label: "Note", Width: "auto", Visible: true, Searchable: true, Sortable: true, Order: 1},
			},
		},
		FormLayout: FormLayout{Fields: []string{"Note"}},
		FormFields: []FormField{
			{Name: "Id", Label: "Id", Widget: WidgetNumber, ReadOnly: true, Order: 0},
			{Name: "Note", Label: "Note", Widget: WidgetText, Order: 1},
		},
		Resolutions: map[string]string{},
	}
}

func TestConfigValidate_Valid(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestConfigValidate_EmptyEntity(t *testing.T) {
	cfg := validConfig()
	cfg.EntityID = ""
	errs := cfg.Validate()
	assert.Contains(t, errs, "entity id must not be empty")
}

func TestConfigValidate_EmptyLayouts(t *testing.T) {
	cfg := validConfig()
	cfg.GridLayout.Fields = nil
	cfg.FormLayout.Fields = nil
	cfg.FormFields = nil
	errs := cfg.Validate()
	assert.Contains(t, errs, "grid layout must have at least one field")
	assert.Contains(t, errs, "form layout must have at least one field")
	assert.Contains(t, errs, "configuration must have at least one form field")
}

func TestConfigValidate_GridFieldWithoutFormField(t *testing.T) {
	// Scenario: grid references field X not present among form fields.
	cfg := validConfig()
	cfg.GridLayout.Fields = append(cfg.GridLayout.Fields,
		GridField{Name: "X", Label: "X", Width: "auto", Visible: true, Order: 2})

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], `"X"`)
}

func TestConfigValidate_FormFieldWithoutLabel(t *testing.T) {
	cfg := validConfig()
	cfg.FormFields[1].Label = ""
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], `"Note"`)
}

func TestFormFieldLookup_CaseInsensitive(t *testing.T) {
	cfg := validConfig()
	assert.NotNil(t, cfg.FormFieldNamed("note"))
	assert.Nil(t, cfg.FormFieldNamed("missing"))
}

func TestComputeHash_Idempotent(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, ComputeHash(cfg), ComputeHash(cfg))
}

func TestComputeHash_IgnoresTimestampsAndIdentity(t *testing.T) {
	a := validConfig()
	b := validConfig()
	b.ID = "some-generated-id"
	b.Version = 7
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now().Add(time.Hour)
	b.Hash = "stale"

	assert.Equal(t, ComputeHash(a), ComputeHash(b))
}

func TestComputeHash_StableAcrossPersistenceRoundTrip(t *testing.T) {
	// An empty Resolutions map is dropped by omitempty on save, so the
	// reloaded record carries nil instead. The hash must not notice.
	cfg := validConfig()
	before := ComputeHash(cfg)

	payload, err := json.Marshal(cfg)
	assert.NoError(t, err)

	var loaded Config
	assert.NoError(t, json.Unmarshal(payload, &loaded))
	assert.Nil(t, loaded.Resolutions)

	assert.Equal(t, before, ComputeHash(&loaded))
}

func TestComputeHash_ChangesWithContent(t *testing.T) {
	base := ComputeHash(validConfig())

	grid := validConfig()
	grid.GridLayout.Fields[0].Width = "120px"
	assert.NotEqual(t, base, ComputeHash(grid))

	form := validConfig()
	form.FormLayout.Fields = append(form.FormLayout.Fields, "Id")
	assert.NotEqual(t, base, ComputeHash(form))

	field := validConfig()
	field.FormFields[1].Required = true
	assert.NotEqual(t, base, ComputeHash(field))

	res := validConfig()
	res.Resolutions["type-mismatch:note"] = "use-database"
	assert.NotEqual(t, base, ComputeHash(res))
}
