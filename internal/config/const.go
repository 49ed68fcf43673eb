// Package config holds the application constants and the settings of the
// confgen command line.
package config

// Global constants for the application.
const (
	Application = "confgen"
	Description = "Generate typed configuration loaders for annotated structs"
	WebSite     = "https://github.com/origadmin/confgen"
	UI          = "confgen"
)
