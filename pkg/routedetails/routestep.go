package routedetails

import (
	"time"

	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

// RouteStep is the display ready projection of one planned stop merged with
// its completion status.
type RouteStep struct {
	StepNumber int    `groups:"basic"`
	TPSRef     string `groups:"basic"`

	TPSName    string `groups:"basic"`
	TPSAddress string `groups:"basic"`

	IsCompleted bool       `groups:"basic"`
	CompletedAt *time.Time `groups:"basic" json:",omitempty"`

	ProofPhotoURL string `groups:"detailed" json:",omitempty"`
	Notes         string `groups:"detailed" json:",omitempty"`
	HasIssue      bool   `groups:"basic"`

	// EstimatedArrivalTime is never populated yet - arrival estimation based
	// on route optimisation is a planned extension
	EstimatedArrivalTime *time.Time `groups:"detailed" json:",omitempty"`
	ActualArrivalTime    *time.Time `groups:"detailed" json:",omitempty"`
}

func newRouteStep(stepNumber int, tpsRef string, tps *wcdf.TPS, completion *wcdf.CompletionRecord) RouteStep {
	step := RouteStep{
		StepNumber: stepNumber,
		TPSRef:     tpsRef,

		TPSName:    wcdf.UnknownTPSName,
		TPSAddress: wcdf.UnknownTPSAddress,
	}

	if tps != nil {
		step.TPSName = tps.Name
		step.TPSAddress = tps.Address
	}

	if completion != nil {
		completedAt := completion.CompletedAt

		step.IsCompleted = true
		step.CompletedAt = &completedAt
		step.ProofPhotoURL = completion.ProofPhotoURL
		step.Notes = completion.Notes
		step.HasIssue = completion.HasIssue
		step.ActualArrivalTime = &completedAt
	}

	return step
}
