package metrics

// Policy is the classification filter applied before any statistic that
// honours it. The zero value selects every incident.
type Policy struct {
	// SeverityID restricts selection to incidents with this severity ID
	SeverityID string `yaml:"severity_id" json:"severity_id,omitempty"`

	// FieldID names the custom field used for category membership
	FieldID string `yaml:"field_id" json:"field_id,omitempty"`

	// Categories are the accepted values of FieldID
	Categories []string `yaml:"categories" json:"categories,omitempty"`
}

// IsZero reports whether the policy selects everything.
func (p Policy) IsZero() bool {
	return p.SeverityID == "" && p.FieldID == ""
}

// Matches reports whether a single incident is selected by the policy.
// An incident without the classification field is never selected.
func (p Policy) Matches(incident *Incident) bool {
	if p.SeverityID != "" && incident.Severity.ID != p.SeverityID {
		return false
	}

	if p.FieldID == "" {
		return true
	}

	values, ok := incident.FieldValues(p.FieldID)
	if !ok {
		return false
	}
	for _, v := range values {
		if contains(p.Categories, v) {
			return true
		}
	}
	return false
}

// Apply returns the incidents selected by the policy, preserving order.
// The input slice is not modified.
func (p Policy) Apply(incidents []Incident) []Incident {
	if p.IsZero() {
		return incidents
	}

	selected := make([]Incident, 0, len(incidents))
	for i := range incidents {
		if p.Matches(&incidents[i]) {
			selected = append(selected, incidents[i])
		}
	}
	return selected
}
