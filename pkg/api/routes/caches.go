package routes

import "github.com/trashtrack/trashtrack/pkg/repository"

var tpsCache *repository.TPSCache

// SetupCaches wires the redis backed lookup caches. Must run after the
// redis client has connected.
func SetupCaches() {
	tpsCache = &repository.TPSCache{}
	tpsCache.Setup()
}
