package domain

import "time"

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusExcused AttendanceStatus = "excused"
	AttendanceStatusLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusExcused, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord marks one person's attendance at one event.
type AttendanceRecord struct {
	ID           string
	TenantID     string
	EventID      string
	PersonID     string
	Status       AttendanceStatus
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Notes        string
	MarkedBy     string
	// Event and Person are snapshots resolved from the directory when the
	// record is created. A lookup miss leaves them nil.
	Event     *EventRef
	Person    *PersonRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateAttendanceInput is the payload for creating attendance records.
type CreateAttendanceInput struct {
	TenantID     string
	EventID      string
	PersonID     string
	Status       AttendanceStatus
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Notes        string
	MarkedBy     string
}

// UpdateAttendanceInput carries a partial update; nil fields are left alone.
type UpdateAttendanceInput struct {
	Status       *AttendanceStatus
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Notes        *string
	MarkedBy     *string
}

// BulkMarkInput marks a whole roster against one event in a single call.
// Each person gets an upsert keyed on (EventID, PersonID).
type BulkMarkInput struct {
	TenantID    string
	EventID     string
	PersonIDs   []string
	Status      AttendanceStatus
	CheckInTime *time.Time
	Notes       string
	MarkedBy    string
}

// AttendanceFilter narrows List/Statistics results. All set fields must match
// (AND semantics). DateFrom/DateTo compare against the resolved event date;
// records without an event snapshot never match a date range.
type AttendanceFilter struct {
	EventID  string
	PersonID string
	Status   AttendanceStatus
	TenantID string
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
}

// EventAttendance is the per-event statistics breakdown row.
type EventAttendance struct {
	EventID   string
	EventName string
	Total     int
	Present   int
	Rate      float64
}

// PersonAttendance is the per-person statistics breakdown row.
type PersonAttendance struct {
	PersonID   string
	PersonName string
	Total      int
	Present    int
	Rate       float64
}

// AttendanceStats aggregates records matching a filter. AttendanceRate is
// present/total*100, 0 when no records match.
type AttendanceStats struct {
	TotalRecords   int
	Present        int
	Absent         int
	Excused        int
	Late           int
	AttendanceRate float64
	ByEvent        []EventAttendance
	ByPerson       []PersonAttendance
}
