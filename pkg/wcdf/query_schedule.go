package wcdf

import "go.mongodb.org/mongo-driver/bson"

type QuerySchedule struct {
	PrimaryIdentifier string
	DriverRef         string
}

func (s *QuerySchedule) ToBson() bson.M {
	query := bson.M{}

	if s.PrimaryIdentifier != "" {
		query["primaryidentifier"] = s.PrimaryIdentifier
	}

	if s.DriverRef != "" {
		query["driverref"] = s.DriverRef
	}

	if len(query) == 0 {
		return nil
	}

	return query
}
