package docharvest

// Target is a named harvesting configuration: the navigation root to
// discover from plus the mapping tables that classify its pages. The
// same pipeline logic runs once per target, so one site can be
// harvested section by section.
type Target struct {
	// Name identifies the target and its output subdirectory.
	Name string `yaml:"name"`

	// RootURL is the navigation root the discoverer visits.
	RootURL string `yaml:"rootUrl"`

	// NavSelectors optionally overrides the CSS selectors used to
	// locate the navigation region. Empty means implementation
	// defaults.
	NavSelectors []string `yaml:"navSelectors"`

	// Classify holds the chapter mapping and priority keyword tables.
	Classify ClassifyConfig `yaml:"classify"`
}

// Validate returns an error if the target contains invalid fields.
func (t *Target) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "target name required")
	}
	if t.RootURL == "" {
		return Errorf(EINVALID, "target root URL required")
	}
	return nil
}
