package wizard

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// canonicalConfig is the fixed-order serialization used for hashing.
// Identity and bookkeeping attributes (ID, Version, timestamps, the hash
// itself) are excluded so the digest is a pure function of semantic
// content: regenerating from an unchanged configuration is detectable as
// unchanged. Field order is fixed by this struct declaration and map keys
// are sorted by encoding/json, which keeps the canonical form stable.
type canonicalConfig struct {
	EntityID    string            `json:"entity_id"`
	EntityName  string            `json:"entity_name"`
	Module      string            `json:"module"`
	GridLayout  GridLayout        `json:"grid_layout"`
	FormLayout  FormLayout        `json:"form_layout"`
	FormFields  []FormField       `json:"form_fields"`
	Resolutions map[string]string `json:"resolutions"`
}

// ComputeHash returns the SHA-256 content hash of the configuration,
// rendered as uppercase hex.
func ComputeHash(c *Config) string {
	canonical := canonicalConfig{
		EntityID:    c.EntityID,
		EntityName:  c.EntityName,
		Module:      c.Module,
		GridLayout:  c.GridLayout,
		FormLayout:  c.FormLayout,
		FormFields:  c.FormFields,
		Resolutions: c.Resolutions,
	}

	// Config's omitempty tags drop an empty Resolutions map on save, so a
	// reloaded record carries nil where the original carried {}. Both forms
	// must hash identically; same for a nil vs empty FormFields slice.
	if len(canonical.Resolutions) == 0 {
		canonical.Resolutions = map[string]string{}
	}
	if canonical.FormFields == nil {
		canonical.FormFields = []FormField{}
	}

	payload, _ := json.Marshal(canonical)
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%X", sum)
}
