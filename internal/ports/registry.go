package ports

import "artifactory-inspection/internal/types"

type PackageTypeRegistryPort interface {
	IsSupported(packageType string) bool
	Lookup(packageType string) (types.SupportedPackageType, bool)
}
