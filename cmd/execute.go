package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"orec/common"
	"orec/report"

	"github.com/ComedicChimera/olive"
	"github.com/xyproto/env/v2"
)

// Execute is the main entry point for the `orec` CLI utility.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("orec", "orec is the Ore compiler", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false,
		[]string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue(env.Str("ORE_LOG", "verbose"))

	buildCmd := cli.AddSubcommand("build", "compile an Ore source file", true)
	buildCmd.AddPrimaryArg("file-path", "the path to the source file to compile", true)
	buildCmd.AddStringArg("output", "o", "the path to write the generated assembly to", false)
	buildCmd.AddStringArg("target", "t", "the path to a TOML target profile", false)
	buildCmd.AddFlag("dump", "d", "dump the resolved program instead of generating assembly")

	cli.AddSubcommand("version", "print the Ore compiler version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.DisplayInfoMessage("Ore Version", common.OreVersion)
	}
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, loglevel string) {
	srcPath, _ := result.PrimaryArg()

	prof := &BuildProfile{
		LogLevel:   logLevels[loglevel],
		TargetPath: env.Str("ORE_TARGET", ""),
	}

	if _, ok := result.Arguments["dump"]; ok {
		prof.Dump = true
	}

	if outVal, ok := result.Arguments["output"]; ok {
		prof.OutputPath = outVal.(string)
	} else {
		prof.OutputPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + common.OreOutputExt
	}

	if tgtVal, ok := result.Arguments["target"]; ok {
		prof.TargetPath = tgtVal.(string)
	}

	c := NewCompiler(prof, srcPath)
	c.Compile()
	c.Conclude()
}
