package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SpecificationEntry is a single labelled product attribute ("Teor alcoólico",
// "Volume", ...).
type SpecificationEntry struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Specifications keeps product attributes in display order, which a plain map
// would lose. Stored as a JSON array.
type Specifications []SpecificationEntry

// Get returns the value for a name and whether it was present.
func (s Specifications) Get(name string) (string, bool) {
	for _, entry := range s {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return "", false
}

// Value marshals the list as JSON for the database driver.
func (s Specifications) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("specifications: marshal: %w", err)
	}
	return string(payload), nil
}

// Scan decodes a JSON column value.
func (s *Specifications) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("specifications: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, s)
}
