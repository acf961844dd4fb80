package app

import (
	"time"

	"artifactory-inspection/internal/types"
)

type TrackRequest struct {
	Key         string
	PackageType string
	Kind        string
}

type TrackCatalogRequest struct {
	CatalogPath string
}

type TrackResult struct {
	Tracked []types.Repository
}

type InitializeResult struct {
	Report  types.PassReport
	Summary types.PassSummary
}

type VerifyResult struct {
	RepoKey  string
	Expected types.InspectionStatus
	Values   []string
}

type StatusResult struct {
	Repository     types.Repository
	Properties     types.PropertySet
	LastInspection time.Time
}

type PackageTypeInfo struct {
	PackageType types.PackageType
	Supported   bool
	Forge       string
	Patterns    []string
}
