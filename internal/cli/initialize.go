package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"artifactory-inspection/internal/types"
)

type initializeOptions struct {
	Workers            int
	SetupTimeout       time.Duration
	ProjectVersionName string
}

func newInitializeCommand() *cobra.Command {
	opts := initializeOptions{}
	cmd := &cobra.Command{
		Use:   "initialize",
		Short: "Run one initialization pass over every tracked repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInitialize(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Repositories processed in parallel (0 = default)")
	cmd.Flags().DurationVar(&opts.SetupTimeout, "setup-timeout", 0, "Per-repository setup timeout (0 = default)")
	cmd.Flags().StringVar(&opts.ProjectVersionName, "project-version-name", "", "Project version name for new inspection projects")
	return cmd
}

func runInitialize(ctx context.Context, cmd *cobra.Command, opts initializeOptions) error {
	cfg, err := loadServiceConfig()
	if err != nil {
		return err
	}
	cfg.Options.Workers = resolveInt(cmd, opts.Workers, "workers", "workers")
	cfg.Options.SetupTimeout = resolveDuration(cmd, opts.SetupTimeout, "setup_timeout", "setup-timeout")
	cfg.Options.ProjectVersionName = resolveString(cmd, opts.ProjectVersionName, "project_version_name", "project-version-name")
	if cfg.Options.Workers < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workers must not be negative")
	}
	service, closeService, err := newAppService(cfg)
	if err != nil {
		return err
	}
	defer closeService()

	result, err := service.RunInitialization(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, outcome := range result.Report.Outcomes {
		fmt.Fprintln(out, formatOutcome(outcome))
	}
	summary := result.Summary
	fmt.Fprintf(out, "initialized: %d repositories (success=%d failure=%d write-failed=%d canceled=%d)\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.WriteFailed, summary.Canceled)
	if summary.WriteFailed > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d repositories could not be written", summary.WriteFailed))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// formatOutcome renders key, package type and status, followed by the
// failure reason and the artifact count when there is one.
func formatOutcome(outcome types.RepositoryOutcome) string {
	status := "-"
	if outcome.Written() {
		status = string(outcome.Status)
	}
	line := fmt.Sprintf("%s\t%s\t%s", outcome.RepoKey, outcome.PackageType, status)
	if outcome.Reason != types.FailureReasonNone {
		line += "\t" + string(outcome.Reason)
	}
	if outcome.Metadata.ArtifactsSearched {
		line += fmt.Sprintf("\tartifacts=%d", outcome.Metadata.ArtifactCount)
	}
	return line
}
