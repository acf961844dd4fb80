package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"artifactory-inspection/internal/types"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [key]",
		Short: "Show the properties of a tracked repository, or list the tracked set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := openService()
			if err != nil {
				return err
			}
			defer closeService()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				tracked, err := service.Tracked(cmd.Context())
				if err != nil {
					return err
				}
				for _, repo := range tracked {
					values, err := service.Store.GetProperty(cmd.Context(), repo.Key, types.PropertyInspectionStatus)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%s\t%s\t[%s]\n", repo.Key, repo.PackageType, repo.Kind, strings.Join(values, ","))
				}
				return nil
			}

			result, err := service.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s, %s)\n", result.Repository.Key, result.Repository.PackageType, result.Repository.Kind)
			if !result.LastInspection.IsZero() {
				fmt.Fprintf(out, "  last inspection: %s\n", result.LastInspection.Format(time.RFC3339))
			}
			keys := make([]string, 0, len(result.Properties))
			for key := range result.Properties {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "  %s = [%s]\n", key, strings.Join(result.Properties[key], ","))
			}
			return nil
		},
	}
}

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <key>",
		Short: "Check that a tracked repository carries exactly the expected inspection status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := openService()
			if err != nil {
				return err
			}
			defer closeService()
			result, err := service.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "verified: %s %s\n", result.RepoKey, result.Expected)
			return nil
		},
	}
}

func newPackageTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "package-types",
		Short: "List default package types and whether they can be inspected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServiceConfig()
			if err != nil {
				return err
			}
			service := newRegistryService(cfg)
			out := cmd.OutOrStdout()
			for _, info := range service.PackageTypes() {
				if !info.Supported {
					fmt.Fprintf(out, "%s\tunsupported\n", info.PackageType)
					continue
				}
				fmt.Fprintf(out, "%s\tsupported\t%s\t%s\n", info.PackageType, info.Forge, strings.Join(info.Patterns, ","))
			}
			return nil
		},
	}
}
