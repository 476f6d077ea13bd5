package routedetails

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

type fakeScheduleSource struct {
	schedules []wcdf.Schedule
	err       error

	calls          atomic.Int64
	blockFirstCall chan struct{}
	entered        chan struct{}
}

func (f *fakeScheduleSource) GetAllSchedules(ctx context.Context) ([]wcdf.Schedule, error) {
	call := f.calls.Add(1)

	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}

	if f.blockFirstCall != nil && call == 1 {
		select {
		case <-f.blockFirstCall:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return f.schedules, f.err
}

type fakeUserSource struct {
	users []wcdf.User
	err   error

	calls atomic.Int64
}

func (f *fakeUserSource) GetAllUsers(ctx context.Context) ([]wcdf.User, error) {
	f.calls.Add(1)
	return f.users, f.err
}

type fakeTPSSource struct {
	tps []wcdf.TPS
	err error
}

func (f *fakeTPSSource) GetAllTPS(ctx context.Context) ([]wcdf.TPS, error) {
	return f.tps, f.err
}

func testAssembler(schedules *fakeScheduleSource, users *fakeUserSource, tps *fakeTPSSource) *Assembler {
	if schedules == nil {
		schedules = &fakeScheduleSource{}
	}
	if users == nil {
		users = &fakeUserSource{}
	}
	if tps == nil {
		tps = &fakeTPSSource{}
	}

	return NewAssembler(schedules, users, tps)
}

func exampleSchedule() wcdf.Schedule {
	return wcdf.Schedule{
		PrimaryIdentifier: "S1",
		Date:              time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		Status:            wcdf.ScheduleStatusInProgress,
		DriverRef:         "U1",
		TPSRoute:          []string{"T1", "T2", "T3"},
		RouteCompletionData: []wcdf.CompletionRecord{
			{
				TPSRef:        "T1",
				CompletedAt:   time.Date(2024, 3, 18, 6, 30, 0, 0, time.UTC),
				ProofPhotoURL: "https://photos.example.com/t1.jpg",
				Notes:         "overflowing",
				HasIssue:      true,
			},
		},
	}
}

func exampleTPSRecords() []wcdf.TPS {
	return []wcdf.TPS{
		{PrimaryIdentifier: "T1", Name: "TPS Alpha", Address: "1 Alpha Road"},
		{PrimaryIdentifier: "T2", Name: "TPS Beta", Address: "2 Beta Road"},
		{PrimaryIdentifier: "T3", Name: "TPS Gamma", Address: "3 Gamma Road"},
	}
}

func TestLoadRouteDetailsBuildsOneStepPerRouteEntry(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		&fakeUserSource{users: []wcdf.User{{PrimaryIdentifier: "U1", Name: "Budi", Role: wcdf.UserRoleDriver}}},
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	err := assembler.LoadRouteDetails(context.Background(), "S1")
	require.NoError(t, err)

	state := assembler.State().Current()
	require.Len(t, state.RouteSteps, 3)

	for index, step := range state.RouteSteps {
		assert.Equal(t, index+1, step.StepNumber)
	}

	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	require.NotNil(t, state.Driver)
	assert.Equal(t, "Budi", state.Driver.Name)
}

func TestLoadRouteDetailsScheduleNotFound(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		&fakeUserSource{users: []wcdf.User{{PrimaryIdentifier: "U1"}}},
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))
	before := assembler.State().Current()

	err := assembler.LoadRouteDetails(context.Background(), "missing")
	require.ErrorIs(t, err, ErrScheduleNotFound)

	state := assembler.State().Current()
	assert.False(t, state.Loading)
	assert.Equal(t, "Schedule not found", state.Error)

	// The previous substantive fields survive the failed load
	assert.Equal(t, before.Schedule, state.Schedule)
	assert.Equal(t, before.Driver, state.Driver)
	assert.Equal(t, before.TPSList, state.TPSList)
	assert.Equal(t, before.RouteSteps, state.RouteSteps)
}

func TestLoadRouteDetailsUnresolvedTPSUsesPlaceholders(t *testing.T) {
	schedule := exampleSchedule()
	schedule.RouteCompletionData = append(schedule.RouteCompletionData, wcdf.CompletionRecord{
		TPSRef:      "T3",
		CompletedAt: time.Date(2024, 3, 18, 7, 0, 0, 0, time.UTC),
	})

	// Only T1 resolves - T2 and T3 are stale references
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{schedule}},
		nil,
		&fakeTPSSource{tps: exampleTPSRecords()[:1]},
	)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))
	state := assembler.State().Current()

	require.Len(t, state.RouteSteps, 3)
	require.Len(t, state.TPSList, 1)

	assert.Equal(t, "TPS Alpha", state.RouteSteps[0].TPSName)

	assert.Equal(t, wcdf.UnknownTPSName, state.RouteSteps[1].TPSName)
	assert.Equal(t, wcdf.UnknownTPSAddress, state.RouteSteps[1].TPSAddress)
	assert.False(t, state.RouteSteps[1].IsCompleted)

	// Completion is independent of TPS resolution
	assert.Equal(t, wcdf.UnknownTPSName, state.RouteSteps[2].TPSName)
	assert.True(t, state.RouteSteps[2].IsCompleted)
}

func TestLoadRouteDetailsCopiesCompletionRecord(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		nil,
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))
	step := assembler.State().Current().RouteSteps[0]

	completedAt := time.Date(2024, 3, 18, 6, 30, 0, 0, time.UTC)

	assert.True(t, step.IsCompleted)
	require.NotNil(t, step.CompletedAt)
	assert.Equal(t, completedAt, *step.CompletedAt)
	assert.Equal(t, "https://photos.example.com/t1.jpg", step.ProofPhotoURL)
	assert.Equal(t, "overflowing", step.Notes)
	assert.True(t, step.HasIssue)

	require.NotNil(t, step.ActualArrivalTime)
	assert.Equal(t, completedAt, *step.ActualArrivalTime)
	assert.Nil(t, step.EstimatedArrivalTime)
}

func TestLoadRouteDetailsSkipsDriverLookupForSentinel(t *testing.T) {
	for _, driverRef := range []string{"", wcdf.DriverNotAssigned} {
		schedule := exampleSchedule()
		schedule.DriverRef = driverRef

		userSource := &fakeUserSource{users: []wcdf.User{{PrimaryIdentifier: "U1"}}}
		assembler := testAssembler(
			&fakeScheduleSource{schedules: []wcdf.Schedule{schedule}},
			userSource,
			&fakeTPSSource{tps: exampleTPSRecords()},
		)

		require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))

		assert.Nil(t, assembler.State().Current().Driver)
		assert.EqualValues(t, 0, userSource.calls.Load(), "user lookup should be skipped for driver ref %q", driverRef)
	}
}

func TestLoadRouteDetailsDriverLookupFailsSoft(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		&fakeUserSource{err: errors.New("users service down")},
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	err := assembler.LoadRouteDetails(context.Background(), "S1")
	require.NoError(t, err)

	state := assembler.State().Current()
	assert.Nil(t, state.Driver)
	assert.Empty(t, state.Error)
	assert.Len(t, state.RouteSteps, 3)
}

func TestLoadRouteDetailsTPSLookupFailsSoft(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		&fakeUserSource{users: []wcdf.User{{PrimaryIdentifier: "U1"}}},
		&fakeTPSSource{err: errors.New("tps service down")},
	)

	err := assembler.LoadRouteDetails(context.Background(), "S1")
	require.NoError(t, err)

	state := assembler.State().Current()
	assert.Empty(t, state.Error)
	assert.Empty(t, state.TPSList)

	require.Len(t, state.RouteSteps, 3)
	for _, step := range state.RouteSteps {
		assert.Equal(t, wcdf.UnknownTPSName, step.TPSName)
		assert.Equal(t, wcdf.UnknownTPSAddress, step.TPSAddress)
	}
}

func TestLoadRouteDetailsScheduleFetchFailure(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{err: errors.New("connection reset")},
		nil,
		nil,
	)

	err := assembler.LoadRouteDetails(context.Background(), "S1")
	require.Error(t, err)

	state := assembler.State().Current()
	assert.False(t, state.Loading)
	assert.Equal(t, "Failed to load route details: connection reset", state.Error)
}

func TestRefreshRouteDetailsWithoutScheduleIsNoop(t *testing.T) {
	scheduleSource := &fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}}
	assembler := testAssembler(scheduleSource, nil, nil)

	before := assembler.State().Current()

	require.NoError(t, assembler.RefreshRouteDetails(context.Background()))

	assert.Equal(t, before, assembler.State().Current())
}

func TestRefreshRouteDetailsReloadsCurrentSchedule(t *testing.T) {
	scheduleSource := &fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}}
	assembler := testAssembler(scheduleSource, nil, &fakeTPSSource{tps: exampleTPSRecords()})

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))

	// The driver completes another stop before the refresh
	updated := exampleSchedule()
	updated.RouteCompletionData = append(updated.RouteCompletionData, wcdf.CompletionRecord{
		TPSRef:      "T2",
		CompletedAt: time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC),
	})
	scheduleSource.schedules = []wcdf.Schedule{updated}

	require.NoError(t, assembler.RefreshRouteDetails(context.Background()))

	state := assembler.State().Current()
	assert.True(t, state.RouteSteps[1].IsCompleted)
}

func TestClearErrorOnlyTouchesError(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		nil,
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))
	require.ErrorIs(t, assembler.LoadRouteDetails(context.Background(), "missing"), ErrScheduleNotFound)

	before := assembler.State().Current()
	require.Equal(t, "Schedule not found", before.Error)

	assembler.ClearError()

	state := assembler.State().Current()
	assert.Empty(t, state.Error)
	assert.Equal(t, before.Schedule, state.Schedule)
	assert.Equal(t, before.RouteSteps, state.RouteSteps)
	assert.Equal(t, before.Loading, state.Loading)
}

func TestLoadRouteDetailsWorkedExample(t *testing.T) {
	completedAt := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)

	schedule := wcdf.Schedule{
		PrimaryIdentifier: "S1",
		DriverRef:         "",
		TPSRoute:          []string{"T1", "T2"},
		RouteCompletionData: []wcdf.CompletionRecord{
			{TPSRef: "T1", CompletedAt: completedAt},
		},
	}

	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{schedule}},
		nil,
		&fakeTPSSource{tps: []wcdf.TPS{{PrimaryIdentifier: "T1", Name: "Alpha", Address: "1 Rd"}}},
	)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))
	state := assembler.State().Current()

	assert.Nil(t, state.Driver)
	require.Len(t, state.RouteSteps, 2)

	first := state.RouteSteps[0]
	assert.Equal(t, 1, first.StepNumber)
	assert.Equal(t, "T1", first.TPSRef)
	assert.Equal(t, "Alpha", first.TPSName)
	assert.True(t, first.IsCompleted)
	require.NotNil(t, first.ActualArrivalTime)
	assert.Equal(t, completedAt, *first.ActualArrivalTime)

	second := state.RouteSteps[1]
	assert.Equal(t, 2, second.StepNumber)
	assert.Equal(t, "T2", second.TPSRef)
	assert.Equal(t, wcdf.UnknownTPSName, second.TPSName)
	assert.False(t, second.IsCompleted)
}

func TestLoadRouteDetailsDuplicateCompletionFirstWins(t *testing.T) {
	schedule := exampleSchedule()
	schedule.RouteCompletionData = append(schedule.RouteCompletionData, wcdf.CompletionRecord{
		TPSRef:      "T1",
		CompletedAt: time.Date(2024, 3, 18, 23, 0, 0, 0, time.UTC),
		Notes:       "duplicate entry",
	})

	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{schedule}},
		nil,
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))

	step := assembler.State().Current().RouteSteps[0]
	assert.Equal(t, "overflowing", step.Notes)
	require.NotNil(t, step.CompletedAt)
	assert.Equal(t, time.Date(2024, 3, 18, 6, 30, 0, 0, time.UTC), *step.CompletedAt)
}

func TestLoadRouteDetailsCancelAndReplace(t *testing.T) {
	blocked := &fakeScheduleSource{
		schedules:      []wcdf.Schedule{exampleSchedule()},
		blockFirstCall: make(chan struct{}),
		entered:        make(chan struct{}, 1),
	}
	assembler := testAssembler(blocked, nil, &fakeTPSSource{tps: exampleTPSRecords()})

	firstResult := make(chan error, 1)
	go func() {
		firstResult <- assembler.LoadRouteDetails(context.Background(), "S1")
	}()

	// Wait for the first load to be in flight before superseding it
	<-blocked.entered

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))

	require.ErrorIs(t, <-firstResult, context.Canceled)

	state := assembler.State().Current()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.Len(t, state.RouteSteps, 3)
}
