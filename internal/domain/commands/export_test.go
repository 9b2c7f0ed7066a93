package commands

// IsPersonalToken exports isPersonalToken for testing.
var IsPersonalToken = isPersonalToken //nolint:gochecknoglobals // test export

// GenerateTitle exports generateTitle for testing.
var GenerateTitle = generateTitle //nolint:gochecknoglobals // test export

// ChangelogEntry exports changelogEntry for testing.
var ChangelogEntry = changelogEntry //nolint:gochecknoglobals // test export

// PRContent exports prContent for testing.
type PRContent = prContent

// GeneratePRBody exports generatePRBody for testing.
var GeneratePRBody = generatePRBody //nolint:gochecknoglobals // test export

// GateNames returns the evaluation order of the eligibility gates.
func GateNames() []string {
	gates := orderedGates()
	names := make([]string, 0, len(gates))
	for _, current := range gates {
		names = append(names, current.name)
	}
	return names
}
