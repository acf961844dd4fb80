package policies

import (
	"sort"
	"strings"

	"artifactory-inspection/internal/types"
)

type supportedEntry struct {
	forge    string
	patterns string
}

var defaultSupported = map[types.PackageType]supportedEntry{
	types.PackageTypeBower:     {forge: "bower", patterns: "*.tar.gz,*.zip"},
	types.PackageTypeCocoapods: {forge: "cocoapods", patterns: "*.tar.gz"},
	types.PackageTypeComposer:  {forge: "packagist", patterns: "*.zip"},
	types.PackageTypeConda:     {forge: "anaconda", patterns: "*.tar.bz2,*.conda"},
	types.PackageTypeCran:      {forge: "cran", patterns: "*.tar.gz"},
	types.PackageTypeGems:      {forge: "rubygems", patterns: "*.gem"},
	types.PackageTypeGo:        {forge: "golang", patterns: "*.zip"},
	types.PackageTypeGradle:    {forge: "maven", patterns: "*.jar"},
	types.PackageTypeMaven:     {forge: "maven", patterns: "*.jar"},
	types.PackageTypeNpm:       {forge: "npmjs", patterns: "*.tgz"},
	types.PackageTypeNuget:     {forge: "nuget", patterns: "*.nupkg"},
	types.PackageTypePypi:      {forge: "pypi", patterns: "*.whl,*.tar.gz,*.zip,*.egg"},
}

// PackageTypeRegistry classifies package types as supported or not. It is
// built once and never mutated, so concurrent readers need no locking.
type PackageTypeRegistry struct {
	supported map[types.PackageType]types.SupportedPackageType
}

// NewPackageTypeRegistry builds the registry from the default supported
// set. patternOverrides maps a package type to a comma-separated pattern
// list; overrides for unsupported types are ignored.
func NewPackageTypeRegistry(patternOverrides map[string]string) PackageTypeRegistry {
	overrides := map[types.PackageType]string{}
	for name, patterns := range patternOverrides {
		overrides[types.NormalizePackageType(name)] = patterns
	}
	registry := PackageTypeRegistry{
		supported: make(map[types.PackageType]types.SupportedPackageType, len(defaultSupported)),
	}
	for packageType, entry := range defaultSupported {
		patterns := entry.patterns
		if override, ok := overrides[packageType]; ok {
			patterns = override
		}
		registry.supported[packageType] = types.SupportedPackageType{
			PackageType: packageType,
			Forge:       entry.forge,
			Patterns:    splitPatterns(patterns),
		}
	}
	return registry
}

func (r PackageTypeRegistry) IsSupported(packageType string) bool {
	_, ok := r.Lookup(packageType)
	return ok
}

func (r PackageTypeRegistry) Lookup(packageType string) (types.SupportedPackageType, bool) {
	supported, ok := r.supported[types.NormalizePackageType(packageType)]
	if !ok {
		return types.SupportedPackageType{}, false
	}
	supported.Patterns = append([]string{}, supported.Patterns...)
	return supported, true
}

// Supported lists every supported package type ordered by identifier.
func (r PackageTypeRegistry) Supported() []types.SupportedPackageType {
	out := make([]types.SupportedPackageType, 0, len(r.supported))
	for _, packageType := range sortedPackageTypes(r.supported) {
		supported, _ := r.Lookup(string(packageType))
		out = append(out, supported)
	}
	return out
}

func splitPatterns(value string) []string {
	var patterns []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		patterns = append(patterns, trimmed)
	}
	return patterns
}

func sortedPackageTypes(input map[types.PackageType]types.SupportedPackageType) []types.PackageType {
	keys := make([]types.PackageType, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
