package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a Brazilian delivery address stored as a JSONB column.
type Address struct {
	CEP          string  `json:"cep" validate:"required"`
	Street       string  `json:"street" validate:"required"`
	Number       string  `json:"number" validate:"required"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood" validate:"required"`
	Reference    *string `json:"reference,omitempty"`
}

// Complete reports whether the address has the fields required for delivery.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.Number) != "" &&
		strings.TrimSpace(a.Neighborhood) != "" &&
		strings.TrimSpace(a.CEP) != ""
}

// Value marshals the address as JSON for the database driver.
func (a Address) Value() (driver.Value, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("address: marshal: %w", err)
	}
	return string(payload), nil
}

// Scan decodes a JSON column value.
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("address: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, a)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
