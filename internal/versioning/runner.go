package versioning

import (
	"strings"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

const (
	PlatformLinux = "linux"
	PlatformMac   = "mac"
	PlatformWin   = "win"
)

// PlatformFor maps a manifest platform name to its runner family.
func PlatformFor(name string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(normalized, "win32"):
		return PlatformWin, true
	case strings.HasPrefix(normalized, "darwin"):
		return PlatformMac, true
	case strings.HasPrefix(normalized, "linux"):
		return PlatformLinux, true
	default:
		return "", false
	}
}

// AvailabilityFor finds version in the manifest and reports which runner
// families ship it. It returns nil when the manifest has no such entry.
func AvailabilityFor(manifest []entities.ManifestEntry, version string) *entities.RunnerAvailability {
	for _, entry := range manifest {
		if entry.Version != version {
			continue
		}

		availability := &entities.RunnerAvailability{Version: entry.Version}
		for _, file := range entry.Files {
			platform, ok := PlatformFor(file.Platform)
			if !ok {
				continue
			}
			switch platform {
			case PlatformLinux:
				availability.Linux = true
			case PlatformMac:
				availability.Mac = true
			case PlatformWin:
				availability.Win = true
			}
		}
		return availability
	}
	return nil
}

// MissingPlatforms lists the families without a build, sorted by name. A nil
// availability means every family is missing.
func MissingPlatforms(availability *entities.RunnerAvailability) []string {
	if availability == nil {
		return []string{PlatformLinux, PlatformMac, PlatformWin}
	}

	missing := make([]string, 0, 3) //nolint:mnd // three runner families
	if !availability.Linux {
		missing = append(missing, PlatformLinux)
	}
	if !availability.Mac {
		missing = append(missing, PlatformMac)
	}
	if !availability.Win {
		missing = append(missing, PlatformWin)
	}
	return missing
}
