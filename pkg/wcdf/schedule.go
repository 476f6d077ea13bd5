package wcdf

import "time"

// DriverNotAssigned is the sentinel value stored in DriverRef when a
// schedule has been created but no driver has taken it yet.
const DriverNotAssigned = "Not Assigned"

type ScheduleStatus string

const (
	ScheduleStatusPlanned    ScheduleStatus = "planned"
	ScheduleStatusInProgress ScheduleStatus = "in-progress"
	ScheduleStatusCompleted  ScheduleStatus = "completed"
	ScheduleStatusCancelled  ScheduleStatus = "cancelled"
)

// Schedule is a planned collection route for a single driver on a single day.
// TPSRoute is the ordered list of TPS identifiers the driver is meant to
// visit, RouteCompletionData holds one record per visited TPS (unordered).
type Schedule struct {
	PrimaryIdentifier string `groups:"basic" bson:",omitempty"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`

	DataSource *DataSource `groups:"internal" bson:",omitempty"`

	Date   time.Time      `groups:"basic" bson:",omitempty"`
	Status ScheduleStatus `groups:"basic" bson:",omitempty"`

	DriverRef string `groups:"basic" bson:",omitempty"`

	TPSRoute []string `groups:"basic" bson:",omitempty"`

	RouteCompletionData []CompletionRecord `groups:"detailed" bson:",omitempty"`
}

// CompletionRecord is evidence that a TPS stop was visited.
type CompletionRecord struct {
	TPSRef string `groups:"basic" bson:",omitempty"`

	CompletedAt time.Time `groups:"basic" bson:",omitempty"`

	ProofPhotoURL string `groups:"detailed" json:",omitempty" bson:",omitempty"`
	Notes         string `groups:"detailed" json:",omitempty" bson:",omitempty"`
	HasIssue      bool   `groups:"basic"`
}

// HasAssignedDriver reports whether DriverRef points at an actual user
// rather than being empty or the unassigned sentinel.
func (s *Schedule) HasAssignedDriver() bool {
	return s.DriverRef != "" && s.DriverRef != DriverNotAssigned
}

// CompletionRecordFor returns the completion record for the given TPS, or
// nil when the stop has not been completed. If duplicates exist the first
// record in list order wins.
func (s *Schedule) CompletionRecordFor(tpsRef string) *CompletionRecord {
	for index := range s.RouteCompletionData {
		if s.RouteCompletionData[index].TPSRef == tpsRef {
			return &s.RouteCompletionData[index]
		}
	}

	return nil
}
