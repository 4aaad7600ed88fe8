// Package config handles .wsinfo.yaml configuration files.
package config

// Config represents the contents of a .wsinfo.yaml file.
type Config struct {
	Kind   string   `yaml:"kind,omitempty"`
	Format string   `yaml:"format,omitempty"`
	Ignore []string `yaml:"ignore,omitempty"`
	Strict *bool    `yaml:"strict,omitempty"`
}

// FileName is the expected config file name in a start directory.
const FileName = ".wsinfo.yaml"

// Output formats accepted by the format setting.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatPaths = "paths"
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatPaths}
}

// StrictEnabled reports whether strict mode is switched on.
func (c *Config) StrictEnabled() bool {
	return c != nil && c.Strict != nil && *c.Strict
}
