package wcdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasAssignedDriver(t *testing.T) {
	schedule := Schedule{}
	assert.False(t, schedule.HasAssignedDriver())

	schedule.DriverRef = DriverNotAssigned
	assert.False(t, schedule.HasAssignedDriver())

	schedule.DriverRef = "ID:USER:U1"
	assert.True(t, schedule.HasAssignedDriver())
}

func TestCompletionRecordFor(t *testing.T) {
	first := CompletionRecord{TPSRef: "ID:TPS:T1", CompletedAt: time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)}
	duplicate := CompletionRecord{TPSRef: "ID:TPS:T1", CompletedAt: time.Date(2024, 3, 18, 9, 30, 0, 0, time.UTC)}
	other := CompletionRecord{TPSRef: "ID:TPS:T2"}

	schedule := Schedule{
		RouteCompletionData: []CompletionRecord{first, duplicate, other},
	}

	record := schedule.CompletionRecordFor("ID:TPS:T1")
	if assert.NotNil(t, record) {
		assert.Equal(t, first.CompletedAt, record.CompletedAt, "the earliest record in the list wins")
	}

	assert.NotNil(t, schedule.CompletionRecordFor("ID:TPS:T2"))
	assert.Nil(t, schedule.CompletionRecordFor("ID:TPS:T3"))
}
