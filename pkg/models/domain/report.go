package domain

import (
	"encoding/json"
	"time"
)

type TargetType string

const (
	TargetTypeChurch    TargetType = "church"
	TargetTypeCommittee TargetType = "committee"
	TargetTypeTeam      TargetType = "team"
	TargetTypeGroup     TargetType = "group"
	TargetTypePerson    TargetType = "person"
)

// Valid returns true when the target type is a supported value.
func (t TargetType) Valid() bool {
	switch t {
	case TargetTypeChurch, TargetTypeCommittee, TargetTypeTeam, TargetTypeGroup, TargetTypePerson:
		return true
	default:
		return false
	}
}

type ItemType string

const (
	ItemTypeNumber ItemType = "number"
	ItemTypeText   ItemType = "text"
	ItemTypeJSON   ItemType = "json"
)

// ItemValue is the tagged payload of a report item. Exactly one payload is
// populated, selected by the constructor used; accessors report whether the
// value carries that kind.
type ItemValue struct {
	kind ItemType
	num  float64
	text string
	raw  json.RawMessage
}

func NumberValue(v float64) ItemValue {
	return ItemValue{kind: ItemTypeNumber, num: v}
}

func TextValue(s string) ItemValue {
	return ItemValue{kind: ItemTypeText, text: s}
}

func JSONValue(raw json.RawMessage) ItemValue {
	return ItemValue{kind: ItemTypeJSON, raw: raw}
}

func (v ItemValue) Type() ItemType { return v.kind }

func (v ItemValue) Number() (float64, bool) {
	return v.num, v.kind == ItemTypeNumber
}

func (v ItemValue) Text() (string, bool) {
	return v.text, v.kind == ItemTypeText
}

func (v ItemValue) JSON() (json.RawMessage, bool) {
	return v.raw, v.kind == ItemTypeJSON
}

// ReportItem is a single keyed line of a report. Items belong to exactly one
// report and are deleted with it, or replaced wholesale when the report's
// item set is updated.
type ReportItem struct {
	ID       string
	ReportID string
	ItemKey  string
	Value    ItemValue
}

// Report is a periodic submission about one organizational target.
type Report struct {
	ID               string
	TenantID         string
	ReporterPersonID string
	// ReporterPerson is a snapshot resolved at creation time, not kept in
	// sync with the directory.
	ReporterPerson *PersonRef
	TargetType     TargetType
	TargetID       string
	TargetName     string
	Title          string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	SubmittedAt    time.Time
	Items          []ReportItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReportItemInput describes one item at report creation or item replacement.
// An empty ID means a fresh one is minted.
type ReportItemInput struct {
	ID      string
	ItemKey string
	Value   ItemValue
}

// CreateReportInput is the payload for creating reports.
type CreateReportInput struct {
	TenantID         string
	ReporterPersonID string
	TargetType       TargetType
	TargetID         string
	TargetName       string
	Title            string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Items            []ReportItemInput
}

// UpdateReportInput carries a partial update; nil fields are left alone.
// A non-nil Items slice replaces the report's entire item set.
type UpdateReportInput struct {
	TargetType  *TargetType
	TargetID    *string
	TargetName  *string
	Title       *string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Items       []ReportItemInput
}

// ReportFilter narrows List results (AND semantics). PeriodStart/PeriodEnd
// are inclusive-overlap bounds: a report matches when its own period overlaps
// the filter window.
type ReportFilter struct {
	TargetType       TargetType
	TargetID         string
	ReporterPersonID string
	PeriodStart      *time.Time
	PeriodEnd        *time.Time
	Search           string
}

// MonthlyReportCount is one reportsByMonth bucket, labeled "Jan 2006".
// Buckets appear in first-encountered order, not chronologically.
type MonthlyReportCount struct {
	Month string
	Count int
}

// ReportStats aggregates reports matching target filters only.
type ReportStats struct {
	TotalReports   int
	ReportsByType  map[TargetType]int
	ReportsByMonth []MonthlyReportCount
	RecentReports  int
}
