package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"artifactory-inspection/internal/adapters"
	"artifactory-inspection/internal/app"
	"artifactory-inspection/internal/ports"
)

const (
	storeBolt        = "bolt"
	storeArtifactory = "artifactory"
	defaultDBPath    = "artifactory-inspection.db"

	defaultArtifactoryRetries = 3
	defaultArtifactoryTimeout = 60 * time.Second
)

type serviceConfig struct {
	Store              string
	DBPath             string
	ArtifactoryURL     string
	ArtifactoryUser    string
	ArtifactoryAPIKey  string
	ArtifactoryTimeout time.Duration
	ArtifactoryRetries int
	Options            app.ServiceOptions
}

func loadServiceConfig() (serviceConfig, error) {
	cfg := serviceConfig{
		Store:              strings.ToLower(strings.TrimSpace(viper.GetString("store"))),
		DBPath:             strings.TrimSpace(viper.GetString("db")),
		ArtifactoryURL:     strings.TrimSpace(viper.GetString("artifactory.url")),
		ArtifactoryUser:    viper.GetString("artifactory.user"),
		ArtifactoryAPIKey:  viper.GetString("artifactory.api_key"),
		ArtifactoryTimeout: viper.GetDuration("artifactory.timeout"),
		ArtifactoryRetries: viper.GetInt("artifactory.retries"),
		Options: app.ServiceOptions{
			PatternOverrides:   viper.GetStringMapString("patterns"),
			ProjectVersionName: viper.GetString("project_version_name"),
			Workers:            viper.GetInt("workers"),
			SetupTimeout:       viper.GetDuration("setup_timeout"),
			Disabled:           viper.IsSet("enabled") && !viper.GetBool("enabled"),
		},
	}
	if cfg.Store == "" {
		cfg.Store = storeBolt
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	switch cfg.Store {
	case storeBolt:
	case storeArtifactory:
		if cfg.ArtifactoryURL == "" {
			return serviceConfig{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("artifactory store requires artifactory.url")
		}
	default:
		return serviceConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown store %q (expected bolt or artifactory)", cfg.Store))
	}
	if cfg.Options.Workers < 0 {
		return serviceConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workers must not be negative")
	}
	return cfg, nil
}

// newAppService wires the service for the configured store. The bolt file
// always holds the tracked set; the returned func closes it.
func newAppService(cfg serviceConfig) (app.Service, func(), error) {
	db, err := adapters.OpenBoltDB(cfg.DBPath)
	if err != nil {
		return app.Service{}, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Str("db", cfg.DBPath).Msg("failed to close state database")
		}
	}

	var store ports.PropertyStorePort
	switch cfg.Store {
	case storeArtifactory:
		store = adapters.NewArtifactoryPropertyStore(
			cfg.ArtifactoryURL,
			cfg.ArtifactoryUser,
			cfg.ArtifactoryAPIKey,
			cfg.ArtifactoryTimeout,
			cfg.ArtifactoryRetries,
			0,
		)
	default:
		store = adapters.NewBoltPropertyStore(db)
	}
	log.Debug().
		Str("store", cfg.Store).
		Str("db", cfg.DBPath).
		Msg("service configured")
	return app.NewService(store, adapters.NewBoltRepositoryTracker(db), cfg.Options), closeDB, nil
}

func openService() (app.Service, func(), error) {
	cfg, err := loadServiceConfig()
	if err != nil {
		return app.Service{}, nil, err
	}
	return newAppService(cfg)
}

// newRegistryService builds a service for registry queries only; it has
// no store and no tracker.
func newRegistryService(cfg serviceConfig) app.Service {
	return app.NewService(nil, nil, cfg.Options)
}
