package suppliers

import "github.com/Spok95/supply-console/internal/domain"

type Supplier struct {
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	ContactInfo      string  `json:"contact_info"`
	LeadTimeDays     int     `json:"lead_time_days"`
	ReliabilityScore float64 `json:"reliability_score"`
}

// Normalize приводит значения к допустимым границам:
// reliability_score в [0,1], lead_time_days >= 1.
func (s *Supplier) Normalize() {
	switch {
	case s.ReliabilityScore < 0:
		s.ReliabilityScore = 0
	case s.ReliabilityScore > 1:
		s.ReliabilityScore = 1
	}
	if s.LeadTimeDays < 1 {
		s.LeadTimeDays = 1
	}
}

func (s Supplier) Check() error {
	switch {
	case s.ID == "":
		return &domain.SchemaError{Resource: "supplier", Field: "id", Msg: "missing"}
	case s.ReliabilityScore < 0 || s.ReliabilityScore > 1:
		return &domain.SchemaError{Resource: "supplier", Field: "reliability_score", Msg: "out of [0,1]"}
	}
	return nil
}

func (s Supplier) Validate() error {
	var v domain.ValidationErrors
	v.Required("name", s.Name)
	v.Required("contact_info", s.ContactInfo)
	return v.Err()
}

func Form() Supplier {
	return Supplier{LeadTimeDays: 1, ReliabilityScore: 1.0}
}

// NameOf: имя поставщика по id; неизвестный id выводится как есть.
func NameOf(items []Supplier, id string) string {
	for _, s := range items {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
