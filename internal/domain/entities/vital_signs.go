package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VitalSigns is the structured vital-signs block of a consultation. All
// measurements are optional; Summary is a free-text fallback for values that
// do not fit the named fields.
type VitalSigns struct {
	TemperatureC    *float64 `json:"temperature_c,omitempty"`
	HeartRateBPM    *int     `json:"heart_rate_bpm,omitempty"`
	RespiratoryRate *int     `json:"respiratory_rate,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	Summary         string   `json:"summary,omitempty"`
}

// IsZero reports whether no measurement or summary was provided.
func (v VitalSigns) IsZero() bool {
	return v.TemperatureC == nil && v.HeartRateBPM == nil &&
		v.RespiratoryRate == nil && v.WeightKg == nil && v.Summary == ""
}

// Value implements driver.Valuer so the block is stored as JSONB.
func (v VitalSigns) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner.
func (v *VitalSigns) Scan(src interface{}) error {
	if src == nil {
		*v = VitalSigns{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("unsupported source type %T for VitalSigns", src)
	}
}
