package wcdf

import "go.mongodb.org/mongo-driver/bson"

type QueryUser struct {
	PrimaryIdentifier string
}

func (u *QueryUser) ToBson() bson.M {
	if u.PrimaryIdentifier != "" {
		return bson.M{"primaryidentifier": u.PrimaryIdentifier}
	}

	return nil
}
