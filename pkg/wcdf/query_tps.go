package wcdf

import "go.mongodb.org/mongo-driver/bson"

type QueryTPS struct {
	PrimaryIdentifier string
}

func (t *QueryTPS) ToBson() bson.M {
	if t.PrimaryIdentifier != "" {
		return bson.M{"primaryidentifier": t.PrimaryIdentifier}
	}

	return nil
}
