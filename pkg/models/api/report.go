package api

import (
	"encoding/json"
	"time"
)

// ReportItem keeps the three-value wire convention: itemType names which of
// the value fields is authoritative.
type ReportItem struct {
	ID          string          `json:"id"`
	ReportID    string          `json:"reportId"`
	ItemKey     string          `json:"itemKey"`
	ItemType    string          `json:"itemType"`
	ValueNumber *float64        `json:"valueNumber,omitempty"`
	ValueText   *string         `json:"valueText,omitempty"`
	ValueJSON   json.RawMessage `json:"valueJson,omitempty"`
}

type Report struct {
	ID               string       `json:"id"`
	TenantID         string       `json:"tenantId"`
	ReporterPersonID string       `json:"reporterPersonId"`
	ReporterPerson   *PersonRef   `json:"reporterPerson,omitempty"`
	TargetType       string       `json:"targetType"`
	TargetID         string       `json:"targetId"`
	TargetName       string       `json:"targetName,omitempty"`
	Title            string       `json:"title"`
	PeriodStart      time.Time    `json:"periodStart"`
	PeriodEnd        time.Time    `json:"periodEnd"`
	SubmittedAt      time.Time    `json:"submittedAt"`
	Items            []ReportItem `json:"items"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type ReportItemInput struct {
	ID          string          `json:"id,omitempty"`
	ItemKey     string          `json:"itemKey"`
	ItemType    string          `json:"itemType"`
	ValueNumber *float64        `json:"valueNumber,omitempty"`
	ValueText   *string         `json:"valueText,omitempty"`
	ValueJSON   json.RawMessage `json:"valueJson,omitempty"`
}

type CreateReportRequest struct {
	TenantID         string            `json:"tenantId,omitempty"`
	ReporterPersonID string            `json:"reporterPersonId"`
	TargetType       string            `json:"targetType"`
	TargetID         string            `json:"targetId"`
	TargetName       string            `json:"targetName,omitempty"`
	Title            string            `json:"title"`
	PeriodStart      time.Time         `json:"periodStart"`
	PeriodEnd        time.Time         `json:"periodEnd"`
	Items            []ReportItemInput `json:"items,omitempty"`
}

type UpdateReportRequest struct {
	TargetType  *string           `json:"targetType,omitempty"`
	TargetID    *string           `json:"targetId,omitempty"`
	TargetName  *string           `json:"targetName,omitempty"`
	Title       *string           `json:"title,omitempty"`
	PeriodStart *time.Time        `json:"periodStart,omitempty"`
	PeriodEnd   *time.Time        `json:"periodEnd,omitempty"`
	Items       []ReportItemInput `json:"items,omitempty"`
}

type MonthlyReportCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type ReportStats struct {
	TotalReports   int                  `json:"totalReports"`
	ReportsByType  map[string]int       `json:"reportsByType"`
	ReportsByMonth []MonthlyReportCount `json:"reportsByMonth"`
	RecentReports  int                  `json:"recentReports"`
}
