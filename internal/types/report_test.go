package types

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPassReportSummary(t *testing.T) {
	report := PassReport{Outcomes: []RepositoryOutcome{
		{RepoKey: "maven-remote", Status: InspectionStatusSuccess},
		{RepoKey: "foobar-remote", Status: InspectionStatusFailure, Reason: FailureReasonUnsupportedPackageType},
		{RepoKey: "npm-remote", Status: InspectionStatusFailure, Reason: FailureReasonSetupFailed},
		{RepoKey: "pypi-remote", Reason: FailureReasonWriteFailed, Err: errors.New("boom")},
		{RepoKey: "go-remote", Reason: FailureReasonCanceled},
	}}

	want := PassSummary{
		Total:       5,
		Succeeded:   1,
		Failed:      2,
		WriteFailed: 1,
		Canceled:    1,
		SetupFailed: 1,
		Unsupported: 1,
	}
	if diff := cmp.Diff(want, report.Summary()); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}

	outcome, ok := report.Outcome("pypi-remote")
	assert.True(t, ok)
	assert.False(t, outcome.Written())
	_, ok = report.Outcome("absent")
	assert.False(t, ok)
}

func TestParseInspectionStatus(t *testing.T) {
	status, ok := ParseInspectionStatus("SUCCESS")
	assert.True(t, ok)
	assert.Equal(t, InspectionStatusSuccess, status)
	_, ok = ParseInspectionStatus("PENDING")
	assert.False(t, ok)
}
