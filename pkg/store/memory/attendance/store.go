package attendance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cm-tools/church-admin/pkg/models/domain"
	"github.com/cm-tools/church-admin/pkg/store/memory"
	"github.com/cm-tools/church-admin/pkg/store/memory/directory"
)

// Store owns the attendance record collection and answers filtered and
// aggregate queries over it.
type Store interface {
	List(ctx context.Context, filter domain.AttendanceFilter) ([]domain.AttendanceRecord, error)
	GetByID(ctx context.Context, id string) (domain.AttendanceRecord, error)
	Create(ctx context.Context, input domain.CreateAttendanceInput) (domain.AttendanceRecord, error)
	Update(ctx context.Context, id string, input domain.UpdateAttendanceInput) (domain.AttendanceRecord, error)
	Delete(ctx context.Context, id string) error
	BulkMark(ctx context.Context, input domain.BulkMarkInput) ([]domain.AttendanceRecord, error)
	Statistics(ctx context.Context, filter domain.AttendanceFilter) (domain.AttendanceStats, error)
}

type Config struct {
	Directory     directory.Store
	Seed          []domain.AttendanceRecord
	DefaultTenant string
}

type attendanceStore struct {
	mu            sync.RWMutex
	records       []domain.AttendanceRecord
	dir           directory.Store
	defaultTenant string
}

func NewStore(cfg Config) (Store, error) {
	if cfg.Directory == nil {
		return nil, fmt.Errorf("directory store is nil")
	}
	tenant := cfg.DefaultTenant
	if tenant == "" {
		tenant = memory.DefaultTenantID
	}
	return &attendanceStore{
		records:       append([]domain.AttendanceRecord(nil), cfg.Seed...),
		dir:           cfg.Directory,
		defaultTenant: tenant,
	}, nil
}

// List returns records matching every set filter field, in insertion order.
func (s *attendanceStore) List(_ context.Context, filter domain.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.AttendanceRecord, 0)
	for i := range s.records {
		if matchesAttendance(&s.records[i], filter) {
			matched = append(matched, cloneRecord(s.records[i]))
		}
	}
	return matched, nil
}

func (s *attendanceStore) GetByID(_ context.Context, id string) (domain.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.AttendanceRecord{}, fmt.Errorf("attendance record %s: %w", id, memory.ErrNotFound)
	}
	return cloneRecord(s.records[idx]), nil
}

func (s *attendanceStore) Create(ctx context.Context, input domain.CreateAttendanceInput) (domain.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.newRecord(ctx, input)
	s.records = append(s.records, rec)
	return cloneRecord(rec), nil
}

// Update shallow-merges the set fields into an existing record. Event and
// person snapshots are not re-resolved.
func (s *attendanceStore) Update(_ context.Context, id string, input domain.UpdateAttendanceInput) (domain.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.AttendanceRecord{}, fmt.Errorf("update attendance record %s: %w", id, memory.ErrNotFound)
	}

	rec := &s.records[idx]
	if input.Status != nil {
		rec.Status = *input.Status
	}
	if input.CheckInTime != nil {
		rec.CheckInTime = input.CheckInTime
	}
	if input.CheckOutTime != nil {
		rec.CheckOutTime = input.CheckOutTime
	}
	if input.Notes != nil {
		rec.Notes = *input.Notes
	}
	if input.MarkedBy != nil {
		rec.MarkedBy = *input.MarkedBy
	}
	rec.UpdatedAt = time.Now()
	return cloneRecord(*rec), nil
}

func (s *attendanceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete attendance record %s: %w", id, memory.ErrNotFound)
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	return nil
}

// BulkMark upserts one record per person keyed on (EventID, PersonID):
// an existing record gets its status, check-in time and notes overwritten,
// everything else preserved; a missing one is created. Results come back in
// the order of input.PersonIDs.
func (s *attendanceStore) BulkMark(ctx context.Context, input domain.BulkMarkInput) ([]domain.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.AttendanceRecord, 0, len(input.PersonIDs))
	for _, personID := range input.PersonIDs {
		idx := s.indexOfPair(input.EventID, personID)
		if idx >= 0 {
			rec := &s.records[idx]
			rec.Status = input.Status
			rec.CheckInTime = input.CheckInTime
			rec.Notes = input.Notes
			rec.UpdatedAt = time.Now()
			results = append(results, cloneRecord(*rec))
			continue
		}

		rec := s.newRecord(ctx, domain.CreateAttendanceInput{
			TenantID:    input.TenantID,
			EventID:     input.EventID,
			PersonID:    personID,
			Status:      input.Status,
			CheckInTime: input.CheckInTime,
			Notes:       input.Notes,
			MarkedBy:    input.MarkedBy,
		})
		s.records = append(s.records, rec)
		results = append(results, cloneRecord(rec))
	}
	return results, nil
}

// Statistics aggregates over the records List would return for the same
// filter. Records without an event snapshot are left out of the per-event
// breakdown; the rate is present/total*100 and 0 over an empty set.
func (s *attendanceStore) Statistics(ctx context.Context, filter domain.AttendanceFilter) (domain.AttendanceStats, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return domain.AttendanceStats{}, err
	}

	stats := domain.AttendanceStats{
		TotalRecords: len(records),
		ByEvent:      []domain.EventAttendance{},
		ByPerson:     []domain.PersonAttendance{},
	}

	eventIdx := map[string]int{}
	personIdx := map[string]int{}
	for _, rec := range records {
		switch rec.Status {
		case domain.AttendanceStatusPresent:
			stats.Present++
		case domain.AttendanceStatusAbsent:
			stats.Absent++
		case domain.AttendanceStatusExcused:
			stats.Excused++
		case domain.AttendanceStatusLate:
			stats.Late++
		}

		if rec.Event != nil {
			i, ok := eventIdx[rec.EventID]
			if !ok {
				i = len(stats.ByEvent)
				eventIdx[rec.EventID] = i
				stats.ByEvent = append(stats.ByEvent, domain.EventAttendance{
					EventID:   rec.EventID,
					EventName: rec.Event.Name,
				})
			}
			stats.ByEvent[i].Total++
			if rec.Status == domain.AttendanceStatusPresent {
				stats.ByEvent[i].Present++
			}
		}

		i, ok := personIdx[rec.PersonID]
		if !ok {
			i = len(stats.ByPerson)
			personIdx[rec.PersonID] = i
			stats.ByPerson = append(stats.ByPerson, domain.PersonAttendance{
				PersonID:   rec.PersonID,
				PersonName: personDisplayName(rec.Person),
			})
		}
		stats.ByPerson[i].Total++
		if rec.Status == domain.AttendanceStatusPresent {
			stats.ByPerson[i].Present++
		}
	}

	if stats.TotalRecords > 0 {
		stats.AttendanceRate = float64(stats.Present) / float64(stats.TotalRecords) * 100
	}
	for i := range stats.ByEvent {
		stats.ByEvent[i].Rate = rate(stats.ByEvent[i].Present, stats.ByEvent[i].Total)
	}
	for i := range stats.ByPerson {
		stats.ByPerson[i].Rate = rate(stats.ByPerson[i].Present, stats.ByPerson[i].Total)
	}
	return stats, nil
}

// newRecord mints a record from the input, resolving directory snapshots.
// Caller holds the write lock.
func (s *attendanceStore) newRecord(ctx context.Context, input domain.CreateAttendanceInput) domain.AttendanceRecord {
	now := time.Now()
	rec := domain.AttendanceRecord{
		ID:           uuid.NewString(),
		TenantID:     input.TenantID,
		EventID:      input.EventID,
		PersonID:     input.PersonID,
		Status:       input.Status,
		CheckInTime:  input.CheckInTime,
		CheckOutTime: input.CheckOutTime,
		Notes:        input.Notes,
		MarkedBy:     input.MarkedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if rec.TenantID == "" {
		rec.TenantID = s.defaultTenant
	}
	if rec.Status == "" {
		rec.Status = domain.AttendanceStatusPresent
	}

	// Lookup misses degrade to absent snapshots, never an error.
	if evt, err := s.dir.EventByID(ctx, input.EventID); err == nil && evt != nil {
		rec.Event = &domain.EventRef{ID: evt.ID, Name: evt.Name, Date: evt.Date, Type: evt.Type}
	}
	if p, err := s.dir.PersonByID(ctx, input.PersonID); err == nil && p != nil {
		rec.Person = &domain.PersonRef{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
	}
	return rec
}

func (s *attendanceStore) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *attendanceStore) indexOfPair(eventID, personID string) int {
	for i := range s.records {
		if s.records[i].EventID == eventID && s.records[i].PersonID == personID {
			return i
		}
	}
	return -1
}

func matchesAttendance(rec *domain.AttendanceRecord, f domain.AttendanceFilter) bool {
	if f.EventID != "" && rec.EventID != f.EventID {
		return false
	}
	if f.PersonID != "" && rec.PersonID != f.PersonID {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.TenantID != "" && rec.TenantID != f.TenantID {
		return false
	}
	if f.DateFrom != nil || f.DateTo != nil {
		// Date ranges test the resolved event date; records without a
		// snapshot never match.
		if rec.Event == nil {
			return false
		}
		if f.DateFrom != nil && rec.Event.Date.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && rec.Event.Date.After(*f.DateTo) {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		var first, last, event string
		if rec.Person != nil {
			first = strings.ToLower(rec.Person.FirstName)
			last = strings.ToLower(rec.Person.LastName)
		}
		if rec.Event != nil {
			event = strings.ToLower(rec.Event.Name)
		}
		if !strings.Contains(first, needle) && !strings.Contains(last, needle) && !strings.Contains(event, needle) {
			return false
		}
	}
	return true
}

func cloneRecord(rec domain.AttendanceRecord) domain.AttendanceRecord {
	if rec.Event != nil {
		evt := *rec.Event
		rec.Event = &evt
	}
	if rec.Person != nil {
		p := *rec.Person
		rec.Person = &p
	}
	return rec
}

func personDisplayName(p *domain.PersonRef) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func rate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}
