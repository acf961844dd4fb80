package app

import (
	"time"

	"artifactory-inspection/internal/adapters"
	"artifactory-inspection/internal/core"
	"artifactory-inspection/internal/policies"
	"artifactory-inspection/internal/ports"
)

// Service is the reconciliation driver: it owns the tracked set and runs
// initialization passes over it.
type Service struct {
	Registry    policies.PackageTypeRegistry
	Store       ports.PropertyStorePort
	Tracker     ports.RepositoryTrackerPort
	Catalog     ports.RepositoryCatalogPort
	Provisioner ports.RepositoryProvisionerPort
	Initializer core.InspectionInitializer
	Enabled     bool
}

type ServiceOptions struct {
	PatternOverrides   map[string]string
	ProjectVersionName string
	Workers            int
	SetupTimeout       time.Duration
	Disabled           bool
}

func NewService(store ports.PropertyStorePort, tracker ports.RepositoryTrackerPort, opts ServiceOptions) Service {
	registry := policies.NewPackageTypeRegistry(opts.PatternOverrides)
	setup := adapters.NewInspectionSetupAdapter(store, opts.ProjectVersionName)
	initializer := core.NewInspectionInitializer(registry, store, setup)
	if opts.Workers > 0 {
		initializer.Workers = opts.Workers
	}
	if opts.SetupTimeout > 0 {
		initializer.SetupTimeout = opts.SetupTimeout
	}
	provisioner, _ := store.(ports.RepositoryProvisionerPort)
	return Service{
		Registry:    registry,
		Store:       store,
		Tracker:     tracker,
		Catalog:     adapters.NewRepositoryCatalogFileAdapter(),
		Provisioner: provisioner,
		Initializer: initializer,
		Enabled:     !opts.Disabled,
	}
}
