package config

// Overrides carries command-line values; zero values leave the file's
// setting untouched.
type Overrides struct {
	Acronyms     string
	Frontend     string
	Format       string
	Color        string
	DenyWarnings bool
	Include      []string
	Exclude      []string
	NoGitignore  bool
}

// Merge applies o over c and revalidates the result.
func (c Config) Merge(o Overrides) (Config, error) {
	if o.Acronyms != "" {
		c.Lint.Acronyms = o.Acronyms
	}
	if o.Frontend != "" {
		c.Lint.Frontend = o.Frontend
	}
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.Color != "" {
		c.Output.Color = o.Color
	}
	if o.DenyWarnings {
		c.Lint.DenyWarnings = true
	}
	if len(o.Include) > 0 {
		c.Files.Include = append([]string(nil), o.Include...)
	}
	if len(o.Exclude) > 0 {
		c.Files.Exclude = append(append([]string(nil), c.Files.Exclude...), o.Exclude...)
	}
	if o.NoGitignore {
		c.Files.Gitignore = false
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
