package wcdf

import "time"

// Placeholder values used when a TPS referenced by a schedule route cannot
// be resolved. Display layers show these instead of failing the whole route.
const (
	UnknownTPSName    = "Unknown TPS"
	UnknownTPSAddress = "Unknown Address"
)

// TPS is a transfer point station - a fixed waste collection stop.
type TPS struct {
	PrimaryIdentifier string `groups:"basic" bson:",omitempty"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`

	DataSource *DataSource `groups:"internal" bson:",omitempty"`

	Name    string `groups:"basic" bson:",omitempty"`
	Address string `groups:"basic" bson:",omitempty"`

	Location *Location `groups:"basic" bson:",omitempty"`

	Status string `groups:"basic" bson:",omitempty"`
}
