package types

import "strings"

type PackageType string

const (
	PackageTypeBower     PackageType = "bower"
	PackageTypeChef      PackageType = "chef"
	PackageTypeCocoapods PackageType = "cocoapods"
	PackageTypeComposer  PackageType = "composer"
	PackageTypeConan     PackageType = "conan"
	PackageTypeConda     PackageType = "conda"
	PackageTypeCran      PackageType = "cran"
	PackageTypeDebian    PackageType = "debian"
	PackageTypeDocker    PackageType = "docker"
	PackageTypeGems      PackageType = "gems"
	PackageTypeGeneric   PackageType = "generic"
	PackageTypeGitLFS    PackageType = "gitlfs"
	PackageTypeGo        PackageType = "go"
	PackageTypeGradle    PackageType = "gradle"
	PackageTypeHelm      PackageType = "helm"
	PackageTypeIvy       PackageType = "ivy"
	PackageTypeMaven     PackageType = "maven"
	PackageTypeNpm       PackageType = "npm"
	PackageTypeNuget     PackageType = "nuget"
	PackageTypeOpkg      PackageType = "opkg"
	PackageTypeP2        PackageType = "p2"
	PackageTypePuppet    PackageType = "puppet"
	PackageTypePypi      PackageType = "pypi"
	PackageTypeRpm       PackageType = "rpm"
	PackageTypeSbt       PackageType = "sbt"
	PackageTypeVagrant   PackageType = "vagrant"
	PackageTypeVcs       PackageType = "vcs"
)

var defaultPackageTypes = []PackageType{
	PackageTypeBower,
	PackageTypeChef,
	PackageTypeCocoapods,
	PackageTypeComposer,
	PackageTypeConan,
	PackageTypeConda,
	PackageTypeCran,
	PackageTypeDebian,
	PackageTypeDocker,
	PackageTypeGems,
	PackageTypeGeneric,
	PackageTypeGitLFS,
	PackageTypeGo,
	PackageTypeGradle,
	PackageTypeHelm,
	PackageTypeIvy,
	PackageTypeMaven,
	PackageTypeNpm,
	PackageTypeNuget,
	PackageTypeOpkg,
	PackageTypeP2,
	PackageTypePuppet,
	PackageTypePypi,
	PackageTypeRpm,
	PackageTypeSbt,
	PackageTypeVagrant,
	PackageTypeVcs,
}

// DefaultPackageTypes returns the package types a repository manager
// offers out of the box. The returned slice is a copy.
func DefaultPackageTypes() []PackageType {
	out := make([]PackageType, len(defaultPackageTypes))
	copy(out, defaultPackageTypes)
	return out
}

// NormalizePackageType trims and lower-cases a package type identifier.
// Unknown identifiers are kept as-is; callers decide what they mean.
func NormalizePackageType(value string) PackageType {
	return PackageType(strings.ToLower(strings.TrimSpace(value)))
}

type InspectionStatus string

const (
	InspectionStatusSuccess InspectionStatus = "SUCCESS"
	InspectionStatusFailure InspectionStatus = "FAILURE"
)

// ParseInspectionStatus matches the wire form exactly; status values are
// case-sensitive.
func ParseInspectionStatus(value string) (InspectionStatus, bool) {
	switch InspectionStatus(value) {
	case InspectionStatusSuccess:
		return InspectionStatusSuccess, true
	case InspectionStatusFailure:
		return InspectionStatusFailure, true
	default:
		return "", false
	}
}

type RepositoryKind string

const (
	RepositoryKindLocal     RepositoryKind = "local"
	RepositoryKindRemote    RepositoryKind = "remote"
	RepositoryKindVirtual   RepositoryKind = "virtual"
	RepositoryKindFederated RepositoryKind = "federated"
)

func ParseRepositoryKind(value string) (RepositoryKind, bool) {
	switch kind := RepositoryKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case RepositoryKindLocal, RepositoryKindRemote, RepositoryKindVirtual, RepositoryKindFederated:
		return kind, true
	default:
		return "", false
	}
}

type FailureReason string

const (
	FailureReasonNone                   FailureReason = ""
	FailureReasonUnsupportedPackageType FailureReason = "unsupported-package-type"
	FailureReasonSetupFailed            FailureReason = "setup-failed"
	FailureReasonWriteFailed            FailureReason = "write-failed"
	FailureReasonCanceled               FailureReason = "canceled"
)
