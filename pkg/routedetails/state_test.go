package routedetails

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

func receiveSnapshot(t *testing.T, updates chan RouteDetails) RouteDetails {
	t.Helper()

	select {
	case snapshot := <-updates:
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return RouteDetails{}
	}
}

func TestSubscriberSeesLoadingThenTerminalSnapshot(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		nil,
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	updates := assembler.State().Subscribe()
	defer assembler.State().Unsubscribe(updates)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))

	loading := receiveSnapshot(t, updates)
	assert.True(t, loading.Loading)
	assert.Empty(t, loading.Error)

	terminal := receiveSnapshot(t, updates)
	assert.False(t, terminal.Loading)
	require.NotNil(t, terminal.Schedule)
	assert.Equal(t, "S1", terminal.Schedule.PrimaryIdentifier)
	assert.Len(t, terminal.RouteSteps, 3)
}

func TestLoadingSnapshotClearsPreviousError(t *testing.T) {
	assembler := testAssembler(
		&fakeScheduleSource{schedules: []wcdf.Schedule{exampleSchedule()}},
		nil,
		&fakeTPSSource{tps: exampleTPSRecords()},
	)

	require.ErrorIs(t, assembler.LoadRouteDetails(context.Background(), "missing"), ErrScheduleNotFound)
	require.Equal(t, "Schedule not found", assembler.State().Current().Error)

	updates := assembler.State().Subscribe()
	defer assembler.State().Unsubscribe(updates)

	require.NoError(t, assembler.LoadRouteDetails(context.Background(), "S1"))

	loading := receiveSnapshot(t, updates)
	assert.True(t, loading.Loading)
	assert.Empty(t, loading.Error, "loading snapshot should clear the previous error before any IO")
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	holder := NewStateHolder()

	updates := holder.Subscribe()
	holder.Unsubscribe(updates)

	_, open := <-updates
	assert.False(t, open)

	// A second Unsubscribe for the same channel is harmless
	holder.Unsubscribe(updates)
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	holder := NewStateHolder()

	updates := holder.Subscribe()
	defer holder.Unsubscribe(updates)

	// Overfill the subscriber buffer - publish must never block the writer
	for i := 0; i < 64; i++ {
		holder.publish(RouteDetails{Loading: i%2 == 0})
	}

	assert.False(t, holder.Current().Loading)
}
