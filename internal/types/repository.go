package types

type Repository struct {
	Key         string         `yaml:"key" json:"key"`
	PackageType PackageType    `yaml:"package_type" json:"package_type"`
	Kind        RepositoryKind `yaml:"kind" json:"kind"`
}

type RepositoryCatalog struct {
	Repositories []Repository `yaml:"repositories"`
}

// SupportedPackageType describes a package type the inspection can scan.
// Forge names the component namespace used when reporting artifacts and
// Patterns lists the file name globs that identify artifacts.
type SupportedPackageType struct {
	PackageType PackageType
	Forge       string
	Patterns    []string
}

// InspectionMetadata is what setup establishes for a supported repository.
// ArtifactCount is only meaningful when ArtifactsSearched is set.
type InspectionMetadata struct {
	ProjectName        string
	ProjectVersionName string
	Patterns           []string
	ArtifactsSearched  bool
	ArtifactCount      int
}
