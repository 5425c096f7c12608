package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ShippingLine stores the carrier rate selected for an order.
type ShippingLine struct {
	Carrier      string `json:"carrier"`
	Service      string `json:"service"`
	DeliveryDays int    `json:"delivery_days"`
	Total        string `json:"total"`
}

// Value serializes the shipping line to JSON.
func (s *ShippingLine) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the shipping line struct.
func (s *ShippingLine) Scan(value interface{}) error {
	if value == nil {
		*s = ShippingLine{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, s)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("unsupported jsonb source %T", value)
}
