package adapters

import (
	"github.com/cm-tools/church-admin/pkg/models/api"
	"github.com/cm-tools/church-admin/pkg/models/domain"
)

func MapReportItemDomainToApi(item domain.ReportItem) api.ReportItem {
	out := api.ReportItem{
		ID:       item.ID,
		ReportID: item.ReportID,
		ItemKey:  item.ItemKey,
		ItemType: string(item.Value.Type()),
	}
	if n, ok := item.Value.Number(); ok {
		out.ValueNumber = &n
	}
	if t, ok := item.Value.Text(); ok {
		out.ValueText = &t
	}
	if raw, ok := item.Value.JSON(); ok {
		out.ValueJSON = raw
	}
	return out
}

// MapReportItemInputApiToDomain collapses the three-field wire convention
// into the tagged value; itemType picks the authoritative field and the
// others are discarded.
func MapReportItemInputApiToDomain(in api.ReportItemInput) domain.ReportItemInput {
	out := domain.ReportItemInput{ID: in.ID, ItemKey: in.ItemKey}
	switch domain.ItemType(in.ItemType) {
	case domain.ItemTypeNumber:
		var n float64
		if in.ValueNumber != nil {
			n = *in.ValueNumber
		}
		out.Value = domain.NumberValue(n)
	case domain.ItemTypeJSON:
		out.Value = domain.JSONValue(in.ValueJSON)
	default:
		var t string
		if in.ValueText != nil {
			t = *in.ValueText
		}
		out.Value = domain.TextValue(t)
	}
	return out
}

func MapReportDomainToApi(rep domain.Report) api.Report {
	out := api.Report{
		ID:               rep.ID,
		TenantID:         rep.TenantID,
		ReporterPersonID: rep.ReporterPersonID,
		TargetType:       string(rep.TargetType),
		TargetID:         rep.TargetID,
		TargetName:       rep.TargetName,
		Title:            rep.Title,
		PeriodStart:      rep.PeriodStart,
		PeriodEnd:        rep.PeriodEnd,
		SubmittedAt:      rep.SubmittedAt,
		Items:            make([]api.ReportItem, 0, len(rep.Items)),
		CreatedAt:        rep.CreatedAt,
		UpdatedAt:        rep.UpdatedAt,
	}
	if rep.ReporterPerson != nil {
		out.ReporterPerson = &api.PersonRef{
			ID:        rep.ReporterPerson.ID,
			FirstName: rep.ReporterPerson.FirstName,
			LastName:  rep.ReporterPerson.LastName,
			Email:     rep.ReporterPerson.Email,
		}
	}
	for _, item := range rep.Items {
		out.Items = append(out.Items, MapReportItemDomainToApi(item))
	}
	return out
}

func MapReportsDomainToApi(reps []domain.Report) []api.Report {
	out := make([]api.Report, 0, len(reps))
	for _, rep := range reps {
		out = append(out, MapReportDomainToApi(rep))
	}
	return out
}

func MapCreateReportApiToDomain(req api.CreateReportRequest) domain.CreateReportInput {
	out := domain.CreateReportInput{
		TenantID:         req.TenantID,
		ReporterPersonID: req.ReporterPersonID,
		TargetType:       domain.TargetType(req.TargetType),
		TargetID:         req.TargetID,
		TargetName:       req.TargetName,
		Title:            req.Title,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		Items:            make([]domain.ReportItemInput, 0, len(req.Items)),
	}
	for _, in := range req.Items {
		out.Items = append(out.Items, MapReportItemInputApiToDomain(in))
	}
	return out
}

func MapUpdateReportApiToDomain(req api.UpdateReportRequest) domain.UpdateReportInput {
	out := domain.UpdateReportInput{
		TargetID:    req.TargetID,
		TargetName:  req.TargetName,
		Title:       req.Title,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}
	if req.TargetType != nil {
		tt := domain.TargetType(*req.TargetType)
		out.TargetType = &tt
	}
	if req.Items != nil {
		items := make([]domain.ReportItemInput, 0, len(req.Items))
		for _, in := range req.Items {
			items = append(items, MapReportItemInputApiToDomain(in))
		}
		out.Items = items
	}
	return out
}

func MapReportStatsDomainToApi(stats domain.ReportStats) api.ReportStats {
	out := api.ReportStats{
		TotalReports:   stats.TotalReports,
		ReportsByType:  make(map[string]int, len(stats.ReportsByType)),
		ReportsByMonth: make([]api.MonthlyReportCount, 0, len(stats.ReportsByMonth)),
		RecentReports:  stats.RecentReports,
	}
	for tt, n := range stats.ReportsByType {
		out.ReportsByType[string(tt)] = n
	}
	for _, m := range stats.ReportsByMonth {
		out.ReportsByMonth = append(out.ReportsByMonth, api.MonthlyReportCount(m))
	}
	return out
}

func MapPersonDomainToApi(p domain.Person) api.Person {
	return api.Person{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
}

func MapEventDomainToApi(e domain.Event) api.Event {
	return api.Event{ID: e.ID, Name: e.Name, Date: e.Date, Type: string(e.Type)}
}
