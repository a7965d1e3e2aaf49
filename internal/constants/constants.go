package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "codeguard"

	// ConfigFileName is the default config file name
	ConfigFileName = "codeguard.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "CODEGUARD"
)

// Exit codes used by the check command
const (
	ExitOK        = 0
	ExitViolation = 1
	ExitError     = 2
)
