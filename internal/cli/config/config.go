package config

// RootConfig carries global flags into subcommand constructors.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
	JSONLogs   bool
}
