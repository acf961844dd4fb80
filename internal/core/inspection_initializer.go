package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

const DefaultInitializerWorkers = 4
const DefaultSetupTimeout = 30 * time.Second

// InspectionInitializer runs initialization passes: every repository gets
// its package type classified, supported ones go through setup, and each
// ends with a single inspection status write.
type InspectionInitializer struct {
	Registry     ports.PackageTypeRegistryPort
	Store        ports.PropertyStorePort
	Setup        ports.InspectionSetupPort
	Workers      int
	SetupTimeout time.Duration
	Clock        func() time.Time
	locks        *keyedMutex
}

func NewInspectionInitializer(registry ports.PackageTypeRegistryPort, store ports.PropertyStorePort, setup ports.InspectionSetupPort) InspectionInitializer {
	return InspectionInitializer{
		Registry:     registry,
		Store:        store,
		Setup:        setup,
		Workers:      DefaultInitializerWorkers,
		SetupTimeout: DefaultSetupTimeout,
		Clock:        time.Now,
		locks:        newKeyedMutex(),
	}
}

// Run processes repos in parallel. Per-repository failures are recorded in
// the report and never returned as an error; an error means the pass could
// not start. Repositories not yet started when ctx is done are reported as
// canceled and left untouched.
func (i InspectionInitializer) Run(ctx context.Context, repos []types.Repository) (types.PassReport, error) {
	if i.Registry == nil || i.Store == nil || i.Setup == nil {
		return types.PassReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("initializer requires registry, store and setup ports")
	}
	locks := i.locks
	if locks == nil {
		locks = newKeyedMutex()
	}
	clock := i.Clock
	if clock == nil {
		clock = time.Now
	}
	workers := i.Workers
	if workers <= 0 {
		workers = DefaultInitializerWorkers
	}

	unique := uniqueRepositories(repos)
	report := types.PassReport{
		PassID:    uuid.NewString(),
		StartedAt: clock().UTC(),
		Outcomes:  make([]types.RepositoryOutcome, len(unique)),
	}
	log.Info().
		Str("pass_id", report.PassID).
		Int("repositories", len(unique)).
		Msg("initialization pass started")

	var g errgroup.Group
	g.SetLimit(workers)
	for idx, repo := range unique {
		if ctx.Err() != nil {
			report.Outcomes[idx] = canceledOutcome(repo, ctx.Err())
			continue
		}
		g.Go(func() error {
			report.Outcomes[idx] = i.initializeRepository(ctx, locks, clock, report.PassID, repo)
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = clock().UTC()
	summary := report.Summary()
	log.Info().
		Str("pass_id", report.PassID).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("write_failed", summary.WriteFailed).
		Int("canceled", summary.Canceled).
		Msg("initialization pass finished")
	return report, nil
}

func (i InspectionInitializer) initializeRepository(ctx context.Context, locks *keyedMutex, clock func() time.Time, passID string, repo types.Repository) types.RepositoryOutcome {
	unlock := locks.Lock(repo.Key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return canceledOutcome(repo, err)
	}
	logger := log.With().
		Str("pass_id", passID).
		Str("repo", repo.Key).
		Str("package_type", string(repo.PackageType)).
		Logger()

	outcome := types.RepositoryOutcome{
		RepoKey:     repo.Key,
		PackageType: repo.PackageType,
	}
	status := types.InspectionStatusFailure
	var message string

	supported, ok := i.Registry.Lookup(string(repo.PackageType))
	if !ok {
		outcome.Reason = types.FailureReasonUnsupportedPackageType
		message = fmt.Sprintf("package type %q is not supported", repo.PackageType)
		logger.Warn().Msg("package type not supported; marking repository as failed")
	} else {
		metadata, err := i.runSetup(ctx, repo, supported)
		if err != nil {
			if ctx.Err() != nil {
				return canceledOutcome(repo, ctx.Err())
			}
			outcome.Reason = types.FailureReasonSetupFailed
			outcome.Err = err
			message = fmt.Sprintf("setup failed: %s", errorText(err))
			logger.Warn().Err(err).Msg("inspection setup failed; marking repository as failed")
		} else {
			status = types.InspectionStatusSuccess
			outcome.Metadata = metadata
		}
	}

	properties := types.PropertySet{
		types.PropertyInspectionStatus: {string(status)},
		types.PropertyLastInspection:   {clock().UTC().Format(time.RFC3339)},
	}
	if message != "" {
		properties[types.PropertyInspectionStatusMessage] = []string{message}
	} else {
		properties[types.PropertyInspectionStatusMessage] = nil
	}
	if err := i.Store.SetProperties(ctx, repo.Key, properties); err != nil {
		if ctx.Err() != nil {
			logger.Warn().Err(err).Msg("pass canceled while writing inspection status")
			return canceledOutcome(repo, ctx.Err())
		}
		logger.Error().Err(err).Str("status", string(status)).Msg("failed to write inspection status")
		return types.RepositoryOutcome{
			RepoKey:     repo.Key,
			PackageType: repo.PackageType,
			Reason:      types.FailureReasonWriteFailed,
			Err:         err,
		}
	}
	outcome.Status = status
	logger.Info().
		Str("status", string(status)).
		Str("reason", string(outcome.Reason)).
		Int("artifacts", outcome.Metadata.ArtifactCount).
		Msg("inspection status recorded")
	return outcome
}

func (i InspectionInitializer) runSetup(ctx context.Context, repo types.Repository, supported types.SupportedPackageType) (types.InspectionMetadata, error) {
	timeout := i.SetupTimeout
	if timeout <= 0 {
		timeout = DefaultSetupTimeout
	}
	setupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	metadata, err := i.Setup.Setup(setupCtx, repo, supported)
	if err == nil && errors.Is(setupCtx.Err(), context.DeadlineExceeded) {
		return types.InspectionMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("setup exceeded %s", timeout)).
			WithCause(setupCtx.Err())
	}
	if err != nil {
		return types.InspectionMetadata{}, err
	}
	return metadata, nil
}

func canceledOutcome(repo types.Repository, err error) types.RepositoryOutcome {
	return types.RepositoryOutcome{
		RepoKey:     repo.Key,
		PackageType: repo.PackageType,
		Reason:      types.FailureReasonCanceled,
		Err:         err,
	}
}

// uniqueRepositories keeps the first record per key so a pass writes each
// repository once.
func uniqueRepositories(repos []types.Repository) []types.Repository {
	seen := make(map[string]struct{}, len(repos))
	out := make([]types.Repository, 0, len(repos))
	for _, repo := range repos {
		if _, ok := seen[repo.Key]; ok {
			continue
		}
		seen[repo.Key] = struct{}{}
		out = append(out, repo)
	}
	return out
}

func errorText(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && builder.Msg != "" {
		return builder.Msg
	}
	return err.Error()
}
