package config

// Merge layers repo config over global config. Scalar settings from repo
// win when set; ignore patterns from both files apply.
func Merge(global, repo *Config) *Config {
	result := &Config{}
	for _, c := range []*Config{global, repo} {
		if c == nil {
			continue
		}
		if c.Kind != "" {
			result.Kind = c.Kind
		}
		if c.Format != "" {
			result.Format = c.Format
		}
		if c.Strict != nil {
			strict := *c.Strict
			result.Strict = &strict
		}
		result.Ignore = append(result.Ignore, c.Ignore...)
	}
	return result
}
