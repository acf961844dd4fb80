package types

import "time"

type RepositoryOutcome struct {
	RepoKey     string
	PackageType PackageType
	// Status is empty when nothing was written for the repository.
	Status      InspectionStatus
	Reason      FailureReason
	Err         error
	// Metadata is what setup established; zero unless setup succeeded.
	Metadata    InspectionMetadata
}

// Written reports whether the pass stored a status for the repository.
func (o RepositoryOutcome) Written() bool {
	return o.Status != ""
}

type PassReport struct {
	PassID     string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []RepositoryOutcome
}

type PassSummary struct {
	Total       int
	Succeeded   int
	Failed      int
	WriteFailed int
	Canceled    int
	SetupFailed int
	Unsupported int
}

func (r PassReport) Summary() PassSummary {
	summary := PassSummary{Total: len(r.Outcomes)}
	for _, outcome := range r.Outcomes {
		switch outcome.Status {
		case InspectionStatusSuccess:
			summary.Succeeded++
		case InspectionStatusFailure:
			summary.Failed++
		}
		switch outcome.Reason {
		case FailureReasonWriteFailed:
			summary.WriteFailed++
		case FailureReasonCanceled:
			summary.Canceled++
		case FailureReasonSetupFailed:
			summary.SetupFailed++
		case FailureReasonUnsupportedPackageType:
			summary.Unsupported++
		}
	}
	return summary
}

// Outcome returns the outcome recorded for a repository key.
func (r PassReport) Outcome(repoKey string) (RepositoryOutcome, bool) {
	for _, outcome := range r.Outcomes {
		if outcome.RepoKey == repoKey {
			return outcome, true
		}
	}
	return RepositoryOutcome{}, false
}
