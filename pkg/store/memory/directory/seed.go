package directory

import (
	"time"

	"github.com/cm-tools/church-admin/pkg/models/domain"
)

// SeedPeople returns the bundled congregation roster so the UI can render
// immediately without a backend.
func SeedPeople() []domain.Person {
	return []domain.Person{
		{ID: "person-1", FirstName: "John", LastName: "Smith", Email: "john.smith@example.com"},
		{ID: "person-2", FirstName: "Mary", LastName: "Johnson", Email: "mary.johnson@example.com"},
		{ID: "person-3", FirstName: "David", LastName: "Williams", Email: "david.williams@example.com"},
		{ID: "person-4", FirstName: "Sarah", LastName: "Brown", Email: "sarah.brown@example.com"},
		{ID: "person-5", FirstName: "Michael", LastName: "Davis", Email: "michael.davis@example.com"},
		{ID: "person-6", FirstName: "Rebecca", LastName: "Miller", Email: "rebecca.miller@example.com"},
		{ID: "person-7", FirstName: "James", LastName: "Wilson", Email: "james.wilson@example.com"},
		{ID: "person-8", FirstName: "Grace", LastName: "Moore", Email: "grace.moore@example.com"},
	}
}

// SeedEvents returns the bundled event calendar. Dates are relative to
// process start so date-range filters have something to match.
func SeedEvents() []domain.Event {
	now := time.Now()
	return []domain.Event{
		{ID: "event-1", Name: "Sunday Service", Date: now.AddDate(0, 0, -7), Type: domain.EventTypeService},
		{ID: "event-2", Name: "Midweek Prayer Meeting", Date: now.AddDate(0, 0, -4), Type: domain.EventTypeMeeting},
		{ID: "event-3", Name: "Youth Bible Class", Date: now.AddDate(0, 0, -3), Type: domain.EventTypeClass},
		{ID: "event-4", Name: "Community Outreach", Date: now.AddDate(0, 0, -1), Type: domain.EventTypeOutreach},
		{ID: "event-5", Name: "Sunday Service", Date: now, Type: domain.EventTypeService},
		{ID: "event-6", Name: "Choir Fellowship", Date: now.AddDate(0, 0, 2), Type: domain.EventTypeFellowship},
	}
}
