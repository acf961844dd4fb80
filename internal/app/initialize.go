package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// RunInitialization runs one pass over a snapshot of the tracked set.
// Failures of single repositories are in the report, not in the error.
func (s Service) RunInitialization(ctx context.Context) (InitializeResult, error) {
	if !s.Enabled {
		return InitializeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("inspection is disabled")
	}
	if s.Tracker == nil {
		return InitializeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("initialization requires a repository tracker")
	}
	tracked, err := s.Tracker.Tracked(ctx)
	if err != nil {
		return InitializeResult{}, err
	}
	report, err := s.Initializer.Run(ctx, tracked)
	if err != nil {
		return InitializeResult{}, err
	}
	return InitializeResult{
		Report:  report,
		Summary: report.Summary(),
	}, nil
}
