package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Convert structured documents between JSON, YAML and property lists"
	MsgConvertShort    = "Convert files to another format"
	MsgDetectShort     = "Show the detected format of files"
	MsgFormatsShort    = "List the supported formats and dumpers"
	MsgInspectShort    = "Print the document tree of a file"
	MsgGenConfigShort  = "Generate a configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgTargetChoices   = "Choose a target with --to: %s\n"
	MsgConfigWritten   = "Wrote configuration to %s"
	MsgNoFilesGiven    = "no files given"
	MsgVersionFormat   = "fileconv %s\n"
	MsgStdinSourceName = "<stdin>"

	// Error messages
	MsgErrBadParams     = "invalid --param values (want key=value): %s"
	MsgErrBadOverrides  = "invalid --set values (want key=value): %s"
	MsgErrReadStdin     = "cannot read standard input"
	MsgErrConfigExists  = "%s already exists, use --force to replace it"
	MsgErrStdinMultiple = "standard input cannot be combined with other files"
	MsgErrNoDestination = "%s has no destination to compare with"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Read user configuration from this file"
	MsgFlagSet        = "Override a configuration key (key=value, repeatable)"
	MsgFlagOutput     = "Output format: auto, term, text or json"
	MsgFlagFrom       = "Source format, skipping detection"
	MsgFlagTo         = "Target format or dumper (json, yaml, yaml-omap, plist)"
	MsgFlagExt        = "Extension of the destination file"
	MsgFlagClassifier = "Content classifier of the source (e.g. source.json)"
	MsgFlagParam      = "Loader or dumper option (key=value, repeatable)"
	MsgFlagStdout     = "Print the converted document instead of writing it"
	MsgFlagDiff       = "Show a diff against the existing destination instead of writing"
	MsgFlagDryRun     = "Convert but do not write anything"
	MsgFlagFor        = "Normalize the tree for this target format first"
	MsgFlagWrite      = "Write the configuration instead of printing it"
	MsgFlagUser       = "With -w, write the user configuration file"
	MsgFlagCurrent    = "Print the effective configuration instead of the template"
	MsgFlagForce      = "Replace an existing configuration file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/convert-long.txt
	msgConvertLongRaw string
	MsgConvertLong    = strings.TrimSpace(msgConvertLongRaw)

	//go:embed msgs/convert-example.txt
	msgConvertExampleRaw string
	MsgConvertExample    = strings.TrimRight(msgConvertExampleRaw, "\n")

	//go:embed msgs/detect-long.txt
	msgDetectLongRaw string
	MsgDetectLong    = strings.TrimSpace(msgDetectLongRaw)

	//go:embed msgs/inspect-long.txt
	msgInspectLongRaw string
	MsgInspectLong    = strings.TrimSpace(msgInspectLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
