package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the optional .pybump.yaml configuration. CLI flags override it.
type Settings struct {
	Track             string           `yaml:"track"               validate:"omitempty,track"`
	IncludePrerelease bool             `yaml:"include_prerelease"`
	Paths             []string         `yaml:"paths"               validate:"dive,required"`
	Ignore            []string         `yaml:"ignore"              validate:"dive,required"`
	FollowSymlinks    bool             `yaml:"follow_symlinks"`
	DryRun            bool             `yaml:"dry_run"`
	AllowPRCreation   bool             `yaml:"allow_pr_creation"`
	NoNetworkFallback bool             `yaml:"no_network_fallback"`
	SecurityKeywords  []string         `yaml:"security_keywords"`
	DefaultBranch     string           `yaml:"default_branch"`
	Remote            string           `yaml:"remote"`
	AuthorName        string           `yaml:"author_name"`
	AuthorEmail       string           `yaml:"author_email"        validate:"omitempty,email"`
	Token             string           `yaml:"token"`      // Inline, ${ENV_VAR}, or file path
	Repository        string           `yaml:"repository"` // owner/repo
	Changelog         bool             `yaml:"changelog"`
	Snapshots         SnapshotSettings `yaml:"snapshots"`
}

// SnapshotSettings points at files holding pre-fetched network responses.
type SnapshotSettings struct {
	CPythonTags    string `yaml:"cpython_tags"`
	PythonOrgHTML  string `yaml:"python_org_html"`
	RunnerManifest string `yaml:"runner_manifest"`
	ReleaseNotes   string `yaml:"release_notes"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// repositoryPattern matches an owner/repo slug.
var repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// NewSettings reads and validates a settings file, expanding environment
// variables and resolving a token file path.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = resolveToken(settings.Token)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a settings file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pybump.yaml",
		".pybump.yml",
		"pybump.yaml",
		"pybump.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks field constraints.
func (s *Settings) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("track", func(fl validator.FieldLevel) bool {
		return trackPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register track validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			if first.Tag() == "track" {
				return fmt.Errorf("%w: %q must be in the form X.Y (e.g. 3.13)", ErrInvalidTrack, s.Track)
			}
			return fmt.Errorf("invalid config field %q: failed %q check", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if s.Repository != "" && !repositoryPattern.MatchString(s.Repository) {
		return fmt.Errorf("repository %q must be in the form owner/repo", s.Repository)
	}

	return nil
}

// TargetRepository returns the configured repository, or nil when unset.
func (s *Settings) TargetRepository() *Repository {
	return ParseRepository(s.Repository)
}

// ParseRepository parses an owner/repo slug; it returns nil for anything else.
func ParseRepository(slug string) *Repository {
	if !repositoryPattern.MatchString(slug) {
		return nil
	}
	owner, name, _ := strings.Cut(slug, "/")
	return NewRepository(owner, name)
}

// LoadSnapshots reads every configured snapshot file. Unset paths stay absent.
func (s *Settings) LoadSnapshots() (*Snapshots, error) {
	return LoadSnapshots(s.Snapshots)
}

// LoadSnapshots reads the snapshot files named by paths.
func LoadSnapshots(paths SnapshotSettings) (*Snapshots, error) {
	snapshots := &Snapshots{}
	loaded := false

	if paths.CPythonTags != "" {
		if err := readJSONFile(paths.CPythonTags, &snapshots.CPythonTags); err != nil {
			return nil, err
		}
		if snapshots.CPythonTags == nil {
			snapshots.CPythonTags = []StableTag{}
		}
		loaded = true
	}

	if paths.PythonOrgHTML != "" {
		data, err := os.ReadFile(paths.PythonOrgHTML)
		if err != nil {
			return nil, fmt.Errorf("failed to read python.org snapshot %q: %w", paths.PythonOrgHTML, err)
		}
		html := string(data)
		snapshots.PythonOrgHTML = &html
		loaded = true
	}

	if paths.RunnerManifest != "" {
		if err := readJSONFile(paths.RunnerManifest, &snapshots.RunnerManifest); err != nil {
			return nil, err
		}
		if snapshots.RunnerManifest == nil {
			snapshots.RunnerManifest = []ManifestEntry{}
		}
		loaded = true
	}

	if paths.ReleaseNotes != "" {
		if err := readJSONFile(paths.ReleaseNotes, &snapshots.ReleaseNotes); err != nil {
			return nil, err
		}
		if snapshots.ReleaseNotes == nil {
			snapshots.ReleaseNotes = map[string]string{}
		}
		loaded = true
	}

	if !loaded {
		return nil, nil //nolint:nilnil // absent snapshots are not an error
	}
	return snapshots, nil
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %q: %w", path, err)
	}
	if unmarshalErr := json.Unmarshal(data, target); unmarshalErr != nil {
		return fmt.Errorf("failed to parse snapshot %q: %w", path, unmarshalErr)
	}
	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ResolveTokenFromEnv returns the first GitHub token found in the environment.
func ResolveTokenFromEnv() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}
