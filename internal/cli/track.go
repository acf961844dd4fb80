package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"artifactory-inspection/internal/app"
)

type trackOptions struct {
	Key         string
	PackageType string
	Kind        string
	Catalog     string
}

func newTrackCommand() *cobra.Command {
	opts := trackOptions{}
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Add a repository (or a catalog of repositories) to the tracked set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Key, "key", "", "Repository key")
	cmd.Flags().StringVar(&opts.PackageType, "package-type", "", "Repository package type (e.g., maven, npm)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "local", "Repository kind (local, remote, virtual, federated)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "YAML catalog of repositories to track")
	return cmd
}

func runTrack(ctx context.Context, cmd *cobra.Command, opts trackOptions) error {
	if strings.TrimSpace(opts.Catalog) != "" && strings.TrimSpace(opts.Key) != "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--catalog and --key are mutually exclusive")
	}
	service, closeService, err := openService()
	if err != nil {
		return err
	}
	defer closeService()

	var result app.TrackResult
	if strings.TrimSpace(opts.Catalog) != "" {
		result, err = service.TrackCatalog(ctx, app.TrackCatalogRequest{CatalogPath: opts.Catalog})
	} else {
		result, err = service.Track(ctx, app.TrackRequest{
			Key:         opts.Key,
			PackageType: opts.PackageType,
			Kind:        opts.Kind,
		})
	}
	for _, repo := range result.Tracked {
		fmt.Fprintf(cmd.OutOrStdout(), "tracked: %s (%s, %s)\n", repo.Key, repo.PackageType, repo.Kind)
	}
	return err
}

func newUntrackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "untrack <key>",
		Short: "Remove a repository from the tracked set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := openService()
			if err != nil {
				return err
			}
			defer closeService()
			if err := service.Untrack(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "untracked: %s\n", args[0])
			return nil
		},
	}
}
