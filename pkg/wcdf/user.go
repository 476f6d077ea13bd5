package wcdf

import "time"

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleDriver UserRole = "driver"
)

type User struct {
	PrimaryIdentifier string `groups:"basic" bson:",omitempty"`

	CreationDateTime     time.Time `groups:"detailed" bson:",omitempty"`
	ModificationDateTime time.Time `groups:"detailed" bson:",omitempty"`

	Name string   `groups:"basic" bson:",omitempty"`
	Role UserRole `groups:"basic" bson:",omitempty"`

	PhoneNumber string `groups:"detailed" json:",omitempty" bson:",omitempty"`
	Status      string `groups:"basic" bson:",omitempty"`
}
