package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "ARTIFACTORY_INSPECTION"

type RootConfig struct {
	ConfigFile     string
	LogLevel       string
	Store          string
	DBPath         string
	ArtifactoryURL string
	User           string
	APIKey         string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Msg(errorMessage(err))
		stop()
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "artifactory-inspection",
		Short:         "Reconcile inspection status properties on Artifactory repositories",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.Store, "store", storeBolt, "Property store (bolt or artifactory)")
	flags.StringVar(&cfg.DBPath, "db", defaultDBPath, "State database path")
	flags.StringVar(&cfg.ArtifactoryURL, "artifactory-url", "", "Artifactory base URL (e.g., https://artifactory.example.com/artifactory)")
	flags.StringVar(&cfg.User, "artifactory-user", "", "Artifactory username for basic auth (defaults to api)")
	flags.StringVar(&cfg.APIKey, "artifactory-api-key", "", "Artifactory API key or password")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("store", flags.Lookup("store"))
	_ = viper.BindPFlag("db", flags.Lookup("db"))
	_ = viper.BindPFlag("artifactory.url", flags.Lookup("artifactory-url"))
	_ = viper.BindPFlag("artifactory.user", flags.Lookup("artifactory-user"))
	_ = viper.BindPFlag("artifactory.api_key", flags.Lookup("artifactory-api-key"))

	cmd.AddCommand(newTrackCommand())
	cmd.AddCommand(newUntrackCommand())
	cmd.AddCommand(newInitializeCommand())
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newPackageTypesCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("enabled", true)
	viper.SetDefault("artifactory.retries", defaultArtifactoryRetries)
	viper.SetDefault("artifactory.timeout", defaultArtifactoryTimeout)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("artifactory-inspection")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/artifactory-inspection")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read config file").
			WithCause(err)
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition, errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
