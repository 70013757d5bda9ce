package cmd

import "orec/report"

// BuildProfile carries the settings of one build invocation.
type BuildProfile struct {
	// The path the generated assembly is written to.
	OutputPath string

	// The path to a TOML target profile, used when the source carries no
	// architecture directives.  Empty means no profile.
	TargetPath string

	// Whether to dump the resolved program instead of writing assembly.
	Dump bool

	// The reporter log level for the build.
	LogLevel int
}

// logLevels maps log level selector values to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}
