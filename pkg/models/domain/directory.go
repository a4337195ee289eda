package domain

import "time"

type EventType string

const (
	EventTypeService    EventType = "service"
	EventTypeMeeting    EventType = "meeting"
	EventTypeClass      EventType = "class"
	EventTypeOutreach   EventType = "outreach"
	EventTypeFellowship EventType = "fellowship"
)

// Person is directory reference data owned outside the stores.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Event is directory reference data owned outside the stores.
type Event struct {
	ID   string
	Name string
	Date time.Time
	Type EventType
}

// PersonRef is the denormalized person snapshot embedded on records at
// creation time. It is a one-time copy and is not kept in sync with the
// directory afterwards.
type PersonRef struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// EventRef is the denormalized event snapshot, same staleness contract as
// PersonRef.
type EventRef struct {
	ID   string
	Name string
	Date time.Time
	Type EventType
}
