package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/redis_client"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
)

// TPSCache is a redis backed lookup cache for individual TPS records.
// Misses fall through to Mongo and negative results are cached as "N/A" so
// stale route references dont hammer the database.
type TPSCache struct {
	Cache *cache.Cache[string]
}

func (t *TPSCache) Setup() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Minute))

	t.Cache = cache.New[string](redisStore)
}

func (t *TPSCache) Get(tpsRef string) *wcdf.TPS {
	var tps *wcdf.TPS
	cacheKey := fmt.Sprintf("tps/%s", tpsRef)

	tpsCacheValue, err := t.Cache.Get(context.Background(), cacheKey)
	if err == nil {
		if tpsCacheValue == "N/A" {
			return nil
		}

		json.Unmarshal([]byte(tpsCacheValue), &tps)
		return tps
	}

	tpsCollection := database.GetCollection("tps")
	tpsCollection.FindOne(context.Background(), bson.M{"primaryidentifier": tpsRef}).Decode(&tps)

	if tps == nil {
		t.Cache.Set(context.Background(), cacheKey, "N/A")
	} else {
		tpsJSON, _ := json.Marshal(tps)
		t.Cache.Set(context.Background(), cacheKey, string(tpsJSON))
	}

	return tps
}
