package routedetails

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/trashtrack/trashtrack/pkg/repository"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

// ErrScheduleNotFound is the only fatal lookup failure - every other lookup
// degrades to placeholders instead of aborting the load.
var ErrScheduleNotFound = errors.New("Schedule not found")

// Assembler converts a schedule identifier into a fully resolved, display
// ready route state, tolerating partial data loss gracefully. Each published
// RouteDetails snapshot replaces the previous one on the state holder.
type Assembler struct {
	scheduleSource repository.ScheduleSource
	userSource     repository.UserSource
	tpsSource      repository.TPSSource

	state *StateHolder

	mutex      sync.Mutex
	cancelLoad context.CancelFunc
}

func NewAssembler(scheduleSource repository.ScheduleSource, userSource repository.UserSource, tpsSource repository.TPSSource) *Assembler {
	return &Assembler{
		scheduleSource: scheduleSource,
		userSource:     userSource,
		tpsSource:      tpsSource,

		state: NewStateHolder(),
	}
}

func (a *Assembler) State() *StateHolder {
	return a.state
}

// LoadRouteDetails resolves the schedule, its driver and its stops into a
// terminal snapshot. Starting a new load cancels any in-flight one - the
// superseded load publishes nothing further.
func (a *Assembler) LoadRouteDetails(ctx context.Context, scheduleID string) error {
	if scheduleID == "" {
		return errors.New("schedule identifier must not be empty")
	}

	loadCtx := a.beginLoad(ctx)

	// Loading snapshot goes out before any IO so observers see progress
	// immediately. It clears any previous error but keeps the previous data.
	loadingSnapshot := a.state.snapshotCopy()
	loadingSnapshot.Loading = true
	loadingSnapshot.Error = ""
	a.state.publish(loadingSnapshot)

	snapshot, err := a.assemble(loadCtx, scheduleID)

	if loadCtx.Err() != nil {
		// Superseded or torn down - the winning load owns the state now
		return loadCtx.Err()
	}

	switch {
	case err == nil:
		a.state.publish(snapshot)
	case errors.Is(err, ErrScheduleNotFound):
		a.publishFailure(ErrScheduleNotFound.Error())
	default:
		a.publishFailure(fmt.Sprintf("Failed to load route details: %s", err))
	}

	return err
}

// RefreshRouteDetails re-runs the load for the currently loaded schedule.
// No-op when nothing is loaded.
func (a *Assembler) RefreshRouteDetails(ctx context.Context) error {
	current := a.state.Current()

	if current.Schedule == nil {
		return nil
	}

	return a.LoadRouteDetails(ctx, current.Schedule.PrimaryIdentifier)
}

// ClearError clears the error field without touching any other field. It
// does not cancel an in-flight load.
func (a *Assembler) ClearError() {
	snapshot := a.state.snapshotCopy()
	snapshot.Error = ""
	a.state.publish(snapshot)
}

func (a *Assembler) beginLoad(ctx context.Context) context.Context {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.cancelLoad != nil {
		a.cancelLoad()
	}

	loadCtx, cancel := context.WithCancel(ctx)
	a.cancelLoad = cancel

	return loadCtx
}

func (a *Assembler) publishFailure(message string) {
	snapshot := a.state.snapshotCopy()
	snapshot.Loading = false
	snapshot.Error = message
	a.state.publish(snapshot)
}

func (a *Assembler) assemble(ctx context.Context, scheduleID string) (snapshot RouteDetails, err error) {
	// A collaborator blowing up mid-sequence becomes a terminal error
	// snapshot rather than taking the whole process down
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	schedules, err := a.scheduleSource.GetAllSchedules(ctx)
	if err != nil {
		return RouteDetails{}, err
	}

	var schedule *wcdf.Schedule
	for index := range schedules {
		if schedules[index].PrimaryIdentifier == scheduleID {
			schedule = &schedules[index]
			break
		}
	}

	if schedule == nil {
		return RouteDetails{}, ErrScheduleNotFound
	}

	// Driver and TPS resolution are independent so run them together. Both
	// fail soft - the merge below just sees an absent driver or an empty
	// TPS collection.
	var driver *wcdf.User
	var allTPS []wcdf.TPS

	var waitGroup conc.WaitGroup
	waitGroup.Go(func() {
		driver = a.resolveDriver(ctx, schedule)
	})
	waitGroup.Go(func() {
		allTPS = a.fetchTPS(ctx)
	})
	waitGroup.Wait()

	if ctx.Err() != nil {
		return RouteDetails{}, ctx.Err()
	}

	tpsByIdentifier := map[string]*wcdf.TPS{}
	for index := range allTPS {
		tps := &allTPS[index]

		if _, exists := tpsByIdentifier[tps.PrimaryIdentifier]; !exists {
			tpsByIdentifier[tps.PrimaryIdentifier] = tps
		}
	}

	// Resolved TPS list drops route entries with no matching record, so it
	// can be shorter than the planned route
	tpsList := []wcdf.TPS{}
	for _, tpsRef := range schedule.TPSRoute {
		if tps, exists := tpsByIdentifier[tpsRef]; exists {
			tpsList = append(tpsList, *tps)
		}
	}

	routeSteps := []RouteStep{}
	for index, tpsRef := range schedule.TPSRoute {
		step := newRouteStep(index+1, tpsRef, tpsByIdentifier[tpsRef], schedule.CompletionRecordFor(tpsRef))
		routeSteps = append(routeSteps, step)
	}

	return RouteDetails{
		Loading: false,
		Error:   "",

		Schedule: schedule,
		Driver:   driver,

		TPSList:    tpsList,
		RouteSteps: routeSteps,
	}, nil
}

func (a *Assembler) resolveDriver(ctx context.Context, schedule *wcdf.Schedule) *wcdf.User {
	if !schedule.HasAssignedDriver() {
		return nil
	}

	users, err := a.userSource.GetAllUsers(ctx)
	if err != nil {
		log.Warn().Err(err).Str("schedule", schedule.PrimaryIdentifier).Msg("Failed to fetch users, driver left unresolved")
		return nil
	}

	for index := range users {
		if users[index].PrimaryIdentifier == schedule.DriverRef {
			return &users[index]
		}
	}

	log.Debug().Str("driver", schedule.DriverRef).Str("schedule", schedule.PrimaryIdentifier).Msg("Schedule references unknown driver")

	return nil
}

func (a *Assembler) fetchTPS(ctx context.Context) []wcdf.TPS {
	allTPS, err := a.tpsSource.GetAllTPS(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch TPS records, steps will use placeholders")
		return []wcdf.TPS{}
	}

	return allTPS
}
