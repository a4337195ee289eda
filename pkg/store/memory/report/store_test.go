package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cm-tools/church-admin/pkg/models/domain"
	"github.com/cm-tools/church-admin/pkg/store/memory"
	"github.com/cm-tools/church-admin/pkg/store/memory/directory"
)

func testDirectory(t *testing.T) directory.Store {
	t.Helper()
	dir, err := directory.NewStore(
		[]domain.Person{
			{ID: "P1", FirstName: "John", LastName: "Smith"},
			{ID: "P2", FirstName: "Mary", LastName: "Johnson"},
		},
		nil,
	)
	require.NoError(t, err)
	return dir
}

// testStore runs with zero latency; the simulator has its own test.
func testStore(t *testing.T, seed ...domain.Report) Store {
	t.Helper()
	store, err := NewStore(Config{Directory: testDirectory(t), Seed: seed})
	require.NoError(t, err)
	return store
}

func seededReport(id string, submittedAt time.Time) domain.Report {
	return domain.Report{
		ID:               id,
		TenantID:         memory.DefaultTenantID,
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeChurch,
		TargetID:         "church-1",
		Title:            "Report " + id,
		PeriodStart:      submittedAt.AddDate(0, 0, -7),
		PeriodEnd:        submittedAt,
		SubmittedAt:      submittedAt,
		CreatedAt:        submittedAt,
		UpdatedAt:        submittedAt,
	}
}

func TestList_SortedBySubmittedAtDescending(t *testing.T) {
	now := time.Now()
	store := testStore(t,
		seededReport("r-old", now.AddDate(0, 0, -30)),
		seededReport("r-new", now.AddDate(0, 0, -7)),
		seededReport("r-mid", now.AddDate(0, 0, -14)),
	)

	reps, err := store.List(context.Background(), domain.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, reps, 3)
	assert.Equal(t, "r-new", reps[0].ID)
	assert.Equal(t, "r-mid", reps[1].ID)
	assert.Equal(t, "r-old", reps[2].ID)
}

func TestList_PeriodFiltersAreOverlapTests(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	created, err := store.Create(ctx, domain.CreateReportInput{
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeGroup,
		TargetID:         "group-1",
		Title:            "January group report",
		PeriodStart:      jan1,
		PeriodEnd:        jan31,
	})
	require.NoError(t, err)

	// Filter window overlapping the tail of the report period.
	from := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	reps, err := store.List(ctx, domain.ReportFilter{PeriodStart: &from})
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, created.ID, reps[0].ID)

	// Filter window entirely after the report period.
	after := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	reps, err = store.List(ctx, domain.ReportFilter{PeriodStart: &after})
	require.NoError(t, err)
	assert.Empty(t, reps)

	// Inclusive boundary: filter end equal to the report's start matches.
	reps, err = store.List(ctx, domain.ReportFilter{PeriodEnd: &jan1})
	require.NoError(t, err)
	assert.Len(t, reps, 1)

	before := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	reps, err = store.List(ctx, domain.ReportFilter{PeriodEnd: &before})
	require.NoError(t, err)
	assert.Empty(t, reps)
}

func TestList_SearchMatchesTitleTargetAndReporter(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, domain.CreateReportInput{
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeTeam,
		TargetID:         "team-1",
		TargetName:       "Worship Team",
		Title:            "Quarterly summary",
	})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.CreateReportInput{
		ReporterPersonID: "P2",
		TargetType:       domain.TargetTypeCommittee,
		TargetID:         "committee-1",
		TargetName:       "Finance Committee",
		Title:            "Budget review",
	})
	require.NoError(t, err)

	byTitle, err := store.List(ctx, domain.ReportFilter{Search: "quarterly"})
	require.NoError(t, err)
	assert.Len(t, byTitle, 1)

	byTarget, err := store.List(ctx, domain.ReportFilter{Search: "WORSHIP"})
	require.NoError(t, err)
	assert.Len(t, byTarget, 1)

	byReporter, err := store.List(ctx, domain.ReportFilter{Search: "johnson"})
	require.NoError(t, err)
	require.Len(t, byReporter, 1)
	assert.Equal(t, "Budget review", byReporter[0].Title)
}

func TestCreate_MintsItemsAndSnapshots(t *testing.T) {
	store := testStore(t)

	rep, err := store.Create(context.Background(), domain.CreateReportInput{
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeGroup,
		TargetID:         "group-1",
		Title:            "Weekly digest",
		Items: []domain.ReportItemInput{
			{ItemKey: "attendance_count", Value: domain.NumberValue(42)},
			{ItemKey: "highlights", Value: domain.TextValue("youth night")},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, memory.DefaultTenantID, rep.TenantID)
	assert.False(t, rep.SubmittedAt.IsZero())
	require.NotNil(t, rep.ReporterPerson)
	assert.Equal(t, "John", rep.ReporterPerson.FirstName)

	require.Len(t, rep.Items, 2)
	for _, item := range rep.Items {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, rep.ID, item.ReportID)
	}
	n, ok := rep.Items[0].Value.Number()
	require.True(t, ok)
	assert.Equal(t, float64(42), n)
	_, ok = rep.Items[0].Value.Text()
	assert.False(t, ok)
}

func TestUpdate_ReplacesItemSetWholesale(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.CreateReportInput{
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeGroup,
		TargetID:         "group-1",
		Title:            "Weekly digest",
		Items: []domain.ReportItemInput{
			{ItemKey: "attendance_count", Value: domain.NumberValue(42)},
			{ItemKey: "highlights", Value: domain.TextValue("youth night")},
			{ItemKey: "offerings", Value: domain.NumberValue(350.5)},
		},
	})
	require.NoError(t, err)
	oldIDs := map[string]bool{}
	for _, item := range created.Items {
		oldIDs[item.ID] = true
	}

	kept := created.Items[0].ID
	updated, err := store.Update(ctx, created.ID, domain.UpdateReportInput{
		Items: []domain.ReportItemInput{
			{ID: kept, ItemKey: "attendance_count", Value: domain.NumberValue(45)},
			{ItemKey: "notes", Value: domain.TextValue("rainy evening")},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, kept, updated.Items[0].ID)
	assert.False(t, oldIDs[updated.Items[1].ID])

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestUpdate_MergesScalarsWithoutItems(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.CreateReportInput{
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeGroup,
		TargetID:         "group-1",
		Title:            "Draft title",
		Items: []domain.ReportItemInput{
			{ItemKey: "attendance_count", Value: domain.NumberValue(10)},
		},
	})
	require.NoError(t, err)

	title := "Final title"
	updated, err := store.Update(ctx, created.ID, domain.UpdateReportInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Final title", updated.Title)
	assert.Equal(t, created.SubmittedAt, updated.SubmittedAt)
	assert.Len(t, updated.Items, 1)
}

func TestUpdate_NotFound(t *testing.T) {
	store := testStore(t)

	title := "whatever"
	_, err := store.Update(context.Background(), "missing", domain.UpdateReportInput{Title: &title})
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestDelete_Cascades(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.CreateReportInput{
		ReporterPersonID: "P1",
		TargetType:       domain.TargetTypeChurch,
		TargetID:         "church-1",
		Title:            "Annual report",
		Items: []domain.ReportItemInput{
			{ItemKey: "membership", Value: domain.NumberValue(240)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, memory.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, created.ID), memory.ErrNotFound)
}

func TestStatistics(t *testing.T) {
	now := time.Now()
	old := seededReport("r-old", now.AddDate(0, -3, 0))
	old.TargetType = domain.TargetTypeCommittee
	store := testStore(t,
		seededReport("r-1", now.AddDate(0, 0, -2)),
		seededReport("r-2", now.AddDate(0, 0, -5)),
		old,
	)
	ctx := context.Background()

	stats, err := store.Statistics(ctx, domain.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, 2, stats.ReportsByType[domain.TargetTypeChurch])
	assert.Equal(t, 1, stats.ReportsByType[domain.TargetTypeCommittee])
	assert.Equal(t, 2, stats.RecentReports)

	// Month buckets are keyed "Jan 2006" in first-encountered order.
	require.NotEmpty(t, stats.ReportsByMonth)
	assert.Equal(t, now.AddDate(0, 0, -2).Format("Jan 2006"), stats.ReportsByMonth[0].Month)

	// Target filters narrow the aggregate; search does not apply here.
	filtered, err := store.Statistics(ctx, domain.ReportFilter{
		TargetType: domain.TargetTypeCommittee,
		Search:     "no such title",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.TotalReports)
}

func TestLatency_RespectsContext(t *testing.T) {
	dir := testDirectory(t)
	store, err := NewStore(Config{
		Directory: dir,
		Latency:   memory.Latency{Min: 50 * time.Millisecond, Max: 60 * time.Millisecond},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.List(ctx, domain.ReportFilter{})
	assert.ErrorIs(t, err, context.Canceled)

	start := time.Now()
	_, err = store.List(context.Background(), domain.ReportFilter{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
