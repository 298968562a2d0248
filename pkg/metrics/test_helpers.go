package metrics

import "time"

// testBase is a fixed instant used by the package tests.
var testBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// CreateTestIncident creates an incident created at created with the given
// timestamps expressed as offsets from the creation time.
func CreateTestIncident(id string, created time.Time, offsets map[string]time.Duration) Incident {
	incident := Incident{
		ID:        id,
		Name:      "Test incident " + id,
		CreatedAt: created.Format(time.RFC3339),
		Severity:  Severity{ID: "sev-major", Name: "Major", Rank: 2},
		Status:    Status{ID: "st-closed", Name: "Closed", Category: "closed"},
	}
	for name, offset := range offsets {
		incident.Timestamps = append(incident.Timestamps, Timestamp{
			Name:       name,
			OccurredAt: created.Add(offset).Format(time.RFC3339),
		})
	}
	return incident
}

// CreateTestWindow creates a window of length ending at end with its previous window.
func CreateTestWindow(end time.Time, length time.Duration) TimeWindow {
	start := end.Add(-length)
	return TimeWindow{
		Start:    start,
		End:      end,
		Previous: &TimeWindow{Start: start.Add(-length), End: start},
	}
}
