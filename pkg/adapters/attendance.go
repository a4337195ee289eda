package adapters

import (
	"github.com/cm-tools/church-admin/pkg/models/api"
	"github.com/cm-tools/church-admin/pkg/models/domain"
)

func MapAttendanceRecordDomainToApi(rec domain.AttendanceRecord) api.AttendanceRecord {
	out := api.AttendanceRecord{
		ID:           rec.ID,
		TenantID:     rec.TenantID,
		EventID:      rec.EventID,
		PersonID:     rec.PersonID,
		Status:       string(rec.Status),
		CheckInTime:  rec.CheckInTime,
		CheckOutTime: rec.CheckOutTime,
		Notes:        rec.Notes,
		MarkedBy:     rec.MarkedBy,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.Event != nil {
		out.Event = &api.EventRef{
			ID:   rec.Event.ID,
			Name: rec.Event.Name,
			Date: rec.Event.Date,
			Type: string(rec.Event.Type),
		}
	}
	if rec.Person != nil {
		out.Person = &api.PersonRef{
			ID:        rec.Person.ID,
			FirstName: rec.Person.FirstName,
			LastName:  rec.Person.LastName,
			Email:     rec.Person.Email,
		}
	}
	return out
}

func MapAttendanceRecordsDomainToApi(recs []domain.AttendanceRecord) []api.AttendanceRecord {
	out := make([]api.AttendanceRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, MapAttendanceRecordDomainToApi(rec))
	}
	return out
}

func MapCreateAttendanceApiToDomain(req api.CreateAttendanceRequest) domain.CreateAttendanceInput {
	return domain.CreateAttendanceInput{
		TenantID:     req.TenantID,
		EventID:      req.EventID,
		PersonID:     req.PersonID,
		Status:       domain.AttendanceStatus(req.Status),
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Notes:        req.Notes,
		MarkedBy:     req.MarkedBy,
	}
}

func MapUpdateAttendanceApiToDomain(req api.UpdateAttendanceRequest) domain.UpdateAttendanceInput {
	out := domain.UpdateAttendanceInput{
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		Notes:        req.Notes,
		MarkedBy:     req.MarkedBy,
	}
	if req.Status != nil {
		status := domain.AttendanceStatus(*req.Status)
		out.Status = &status
	}
	return out
}

func MapBulkMarkApiToDomain(req api.BulkMarkRequest) domain.BulkMarkInput {
	return domain.BulkMarkInput{
		EventID:     req.EventID,
		PersonIDs:   req.PersonIDs,
		Status:      domain.AttendanceStatus(req.Status),
		CheckInTime: req.CheckInTime,
		Notes:       req.Notes,
	}
}

func MapAttendanceStatsDomainToApi(stats domain.AttendanceStats) api.AttendanceStats {
	out := api.AttendanceStats{
		TotalRecords:   stats.TotalRecords,
		Present:        stats.Present,
		Absent:         stats.Absent,
		Excused:        stats.Excused,
		Late:           stats.Late,
		AttendanceRate: stats.AttendanceRate,
		ByEvent:        make([]api.EventAttendance, 0, len(stats.ByEvent)),
		ByPerson:       make([]api.PersonAttendance, 0, len(stats.ByPerson)),
	}
	for _, e := range stats.ByEvent {
		out.ByEvent = append(out.ByEvent, api.EventAttendance(e))
	}
	for _, p := range stats.ByPerson {
		out.ByPerson = append(out.ByPerson, api.PersonAttendance(p))
	}
	return out
}
