package api

import "time"

type EventRef struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
	Type string    `json:"type"`
}

type PersonRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

type AttendanceRecord struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId"`
	EventID      string     `json:"eventId"`
	PersonID     string     `json:"personId"`
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	MarkedBy     string     `json:"markedBy,omitempty"`
	Event        *EventRef  `json:"event,omitempty"`
	Person       *PersonRef `json:"person,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type CreateAttendanceRequest struct {
	TenantID     string     `json:"tenantId,omitempty"`
	EventID      string     `json:"eventId"`
	PersonID     string     `json:"personId"`
	Status       string     `json:"status,omitempty"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	MarkedBy     string     `json:"markedBy,omitempty"`
}

type UpdateAttendanceRequest struct {
	Status       *string    `json:"status,omitempty"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	MarkedBy     *string    `json:"markedBy,omitempty"`
}

type BulkMarkRequest struct {
	EventID     string     `json:"eventId"`
	PersonIDs   []string   `json:"personIds"`
	Status      string     `json:"status"`
	CheckInTime *time.Time `json:"checkInTime,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type EventAttendance struct {
	EventID   string  `json:"eventId"`
	EventName string  `json:"eventName"`
	Total     int     `json:"total"`
	Present   int     `json:"present"`
	Rate      float64 `json:"rate"`
}

type PersonAttendance struct {
	PersonID   string  `json:"personId"`
	PersonName string  `json:"personName"`
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Rate       float64 `json:"rate"`
}

type AttendanceStats struct {
	TotalRecords   int                `json:"totalRecords"`
	Present        int                `json:"present"`
	Absent         int                `json:"absent"`
	Excused        int                `json:"excused"`
	Late           int                `json:"late"`
	AttendanceRate float64            `json:"attendanceRate"`
	ByEvent        []EventAttendance  `json:"byEvent"`
	ByPerson       []PersonAttendance `json:"byPerson"`
}
