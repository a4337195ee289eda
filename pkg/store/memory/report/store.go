package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cm-tools/church-admin/pkg/models/domain"
	"github.com/cm-tools/church-admin/pkg/store/memory"
	"github.com/cm-tools/church-admin/pkg/store/memory/directory"
)

// Store owns report records and their items. Every operation waits out the
// configured latency first, preserving the asynchronous contract callers of
// the real API will see.
type Store interface {
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error)
	GetByID(ctx context.Context, id string) (domain.Report, error)
	Create(ctx context.Context, input domain.CreateReportInput) (domain.Report, error)
	Update(ctx context.Context, id string, input domain.UpdateReportInput) (domain.Report, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context, filter domain.ReportFilter) (domain.ReportStats, error)
}

type Config struct {
	Directory     directory.Store
	Seed          []domain.Report
	Latency       memory.Latency
	DefaultTenant string
}

type reportStore struct {
	mu            sync.RWMutex
	reports       []domain.Report
	dir           directory.Store
	latency       memory.Latency
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
	seed := make([]domain.Report, 0, len(cfg.Seed))
	for _, r := range cfg.Seed {
		seed = append(seed, cloneReport(r))
	}
	return &reportStore{
		reports:       seed,
		dir:           cfg.Directory,
		latency:       cfg.Latency,
		defaultTenant: tenant,
	}, nil
}

// List returns matching reports with items attached, newest submission
// first regardless of insertion order.
func (s *reportStore) List(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Report, 0)
	for i := range s.reports {
		if matchesReport(&s.reports[i], filter) {
			matched = append(matched, cloneReport(s.reports[i]))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})
	return matched, nil
}

func (s *reportStore) GetByID(ctx context.Context, id string) (domain.Report, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return domain.Report{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Report{}, fmt.Errorf("report %s: %w", id, memory.ErrNotFound)
	}
	return cloneReport(s.reports[idx]), nil
}

// Create prepends the new report so the collection stays newest-first, and
// mints an id for every supplied item.
func (s *reportStore) Create(ctx context.Context, input domain.CreateReportInput) (domain.Report, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return domain.Report{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rep := domain.Report{
		ID:               uuid.NewString(),
		TenantID:         input.TenantID,
		ReporterPersonID: input.ReporterPersonID,
		TargetType:       input.TargetType,
		TargetID:         input.TargetID,
		TargetName:       input.TargetName,
		Title:            input.Title,
		PeriodStart:      input.PeriodStart,
		PeriodEnd:        input.PeriodEnd,
		SubmittedAt:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if rep.TenantID == "" {
		rep.TenantID = s.defaultTenant
	}
	if p, err := s.dir.PersonByID(ctx, input.ReporterPersonID); err == nil && p != nil {
		rep.ReporterPerson = &domain.PersonRef{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
	}
	rep.Items = buildItems(rep.ID, input.Items)

	s.reports = append([]domain.Report{rep}, s.reports...)
	return cloneReport(rep), nil
}

// Update shallow-merges scalar fields. A non-nil Items slice replaces the
// whole item set, keeping supplied ids and minting the rest.
func (s *reportStore) Update(ctx context.Context, id string, input domain.UpdateReportInput) (domain.Report, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return domain.Report{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Report{}, fmt.Errorf("update report %s: %w", id, memory.ErrNotFound)
	}

	rep := &s.reports[idx]
	if input.TargetType != nil {
		rep.TargetType = *input.TargetType
	}
	if input.TargetID != nil {
		rep.TargetID = *input.TargetID
	}
	if input.TargetName != nil {
		rep.TargetName = *input.TargetName
	}
	if input.Title != nil {
		rep.Title = *input.Title
	}
	if input.PeriodStart != nil {
		rep.PeriodStart = *input.PeriodStart
	}
	if input.PeriodEnd != nil {
		rep.PeriodEnd = *input.PeriodEnd
	}
	if input.Items != nil {
		rep.Items = buildItems(rep.ID, input.Items)
	}
	rep.UpdatedAt = time.Now()
	return cloneReport(*rep), nil
}

// Delete removes the report; its items go with it.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete report %s: %w", id, memory.ErrNotFound)
	}
	s.reports = append(s.reports[:idx], s.reports[idx+1:]...)
	return nil
}

// Statistics aggregates reports matching the target type/id filters only;
// search and period filters are for the list view, not the aggregate one.
// Month buckets appear in first-encountered order.
func (s *reportStore) Statistics(ctx context.Context, filter domain.ReportFilter) (domain.ReportStats, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return domain.ReportStats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.ReportStats{
		ReportsByType:  map[domain.TargetType]int{},
		ReportsByMonth: []domain.MonthlyReportCount{},
	}
	monthIdx := map[string]int{}
	cutoff := time.Now().AddDate(0, 0, -30)

	for i := range s.reports {
		rep := &s.reports[i]
		if filter.TargetType != "" && rep.TargetType != filter.TargetType {
			continue
		}
		if filter.TargetID != "" && rep.TargetID != filter.TargetID {
			continue
		}

		stats.TotalReports++
		stats.ReportsByType[rep.TargetType]++

		month := rep.SubmittedAt.Format("Jan 2006")
		mi, ok := monthIdx[month]
		if !ok {
			mi = len(stats.ReportsByMonth)
			monthIdx[month] = mi
			stats.ReportsByMonth = append(stats.ReportsByMonth, domain.MonthlyReportCount{Month: month})
		}
		stats.ReportsByMonth[mi].Count++

		if !rep.SubmittedAt.Before(cutoff) {
			stats.RecentReports++
		}
	}
	return stats, nil
}

func (s *reportStore) indexOf(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}

func buildItems(reportID string, inputs []domain.ReportItemInput) []domain.ReportItem {
	items := make([]domain.ReportItem, 0, len(inputs))
	for _, in := range inputs {
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, domain.ReportItem{
			ID:       id,
			ReportID: reportID,
			ItemKey:  in.ItemKey,
			Value:    in.Value,
		})
	}
	return items
}

func matchesReport(rep *domain.Report, f domain.ReportFilter) bool {
	if f.TargetType != "" && rep.TargetType != f.TargetType {
		return false
	}
	if f.TargetID != "" && rep.TargetID != f.TargetID {
		return false
	}
	if f.ReporterPersonID != "" && rep.ReporterPersonID != f.ReporterPersonID {
		return false
	}
	// Period filters are overlap tests: the report window must reach the
	// filter's start and begin before its end.
	if f.PeriodStart != nil && rep.PeriodEnd.Before(*f.PeriodStart) {
		return false
	}
	if f.PeriodEnd != nil && rep.PeriodStart.After(*f.PeriodEnd) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		var first, last string
		if rep.ReporterPerson != nil {
			first = strings.ToLower(rep.ReporterPerson.FirstName)
			last = strings.ToLower(rep.ReporterPerson.LastName)
		}
		title := strings.ToLower(rep.Title)
		target := strings.ToLower(rep.TargetName)
		if !strings.Contains(title, needle) && !strings.Contains(target, needle) &&
			!strings.Contains(first, needle) && !strings.Contains(last, needle) {
			return false
		}
	}
	return true
}

func cloneReport(rep domain.Report) domain.Report {
	if rep.ReporterPerson != nil {
		p := *rep.ReporterPerson
		rep.ReporterPerson = &p
	}
	rep.Items = append([]domain.ReportItem(nil), rep.Items...)
	return rep
}
