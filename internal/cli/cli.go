// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and the small command handlers for onboard.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdRoadmap
	CmdPositions
	CmdExtract
	CmdContent
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:       "tui",
	CmdAsk:       "ask",
	CmdChat:      "chat",
	CmdRoadmap:   "roadmap",
	CmdPositions: "positions",
	CmdExtract:   "extract",
	CmdContent:   "content",
	CmdConfig:    "config",
	CmdVersion:   "version",
	CmdHelp:      "help",
}

// String returns the command name as typed on the command line.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool   // Output in JSON format
	API     string // Backend base URL override

	// Command-specific
	Query      string
	File       string
	Tab        string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --position, --type)
	Options map[string]string
}

// Option returns a command-specific option or def when it is unset.
func (a Args) Option(name, def string) string {
	if v, ok := a.Options[name]; ok && v != "" {
		return v
	}
	return def
}

const usageText = `onboard - terminal onboarding assistant

Talks to the onboarding backend to answer questions about the company,
build learning roadmaps, generate onboarding content and extract
employee data from documents.

Usage:
  onboard                      Start the TUI (default)
  onboard tui [--tab NAME]     Start the TUI on chat, roadmap, content or extract
  onboard ask "question"       Ask a single question
  onboard chat                 Interactive chat (/help for commands)
  onboard roadmap --position P [--level fresher|junior|senior]
  onboard positions            List positions offered for roadmaps
  onboard extract FILE [--type cv|id_card|diploma|other] [--export out.json|out.yaml]
  onboard content email --name N [--company C] [--position P] [--start D]
                        [--department D] [--manager M]
  onboard content summary (--file F | --text T) [--type general|key_points|action_items]
  onboard content questions (--file F | --text T) [--type mixed|multiple_choice|true_false]
                        [--count 5]
  onboard content checklist --position P [--department D]
  onboard config [show|get KEY|set KEY VALUE|path]
  onboard version              Show version
  onboard help                 Show this help

Global flags:
  --api URL          Backend base URL (overrides config)
  --json             Machine-readable JSON output
  -q, --quiet        Only print the result
  -v, --verbose      Log debug output to stderr

Examples:
  onboard ask "Chính sách nghỉ phép như thế nào?"
  onboard roadmap --position developer --level junior
  onboard extract ~/Documents/cv.pdf --export form.yaml
  onboard content questions --file handbook.txt --count 10
  onboard config set api.base_url http://10.0.0.5:5001

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Fprintf(stdout, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Fprintf(stdout, "onboard version %s\n", Version)
	fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(stdout, "  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	first := remaining[0]
	cmd := strings.ToLower(first)
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		p := NewArgParser(remaining)
		parsedArgs.Tab = p.FlagAny("tab", "t")
		return CmdTUI, parsedArgs

	case "ask", "a":
		parsedArgs.Query = NewArgParser(remaining).JoinPositional(0)
		return CmdAsk, parsedArgs

	case "chat", "c":
		return CmdChat, parsedArgs

	case "roadmap":
		p := NewArgParser(remaining)
		parsedArgs.Options["position"] = p.FlagAny("position", "p")
		if parsedArgs.Options["position"] == "" {
			parsedArgs.Options["position"] = p.Positional(0)
		}
		parsedArgs.Options["level"] = p.FlagAny("level", "l")
		return CmdRoadmap, parsedArgs

	case "positions":
		return CmdPositions, parsedArgs

	case "extract", "x":
		p := NewArgParser(remaining)
		parsedArgs.File = p.Positional(0)
		parsedArgs.Options["type"] = p.FlagAny("type", "t")
		parsedArgs.Options["export"] = p.FlagAny("export", "o")
		return CmdExtract, parsedArgs

	case "content":
		parseContentArgs(&parsedArgs, remaining)
		return CmdContent, parsedArgs

	case "config", "cfg":
		// Values may start with "-" (player args), so no flag parsing here
		if len(remaining) > 0 {
			parsedArgs.Subcommand = strings.ToLower(remaining[0])
		}
		if len(remaining) > 1 {
			parsedArgs.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			parsedArgs.ConfigVal = strings.Join(remaining[2:], " ")
		}
		return CmdConfig, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: help reports it
		parsedArgs.Subcommand = first
		return CmdHelp, parsedArgs
	}
}

// parseContentArgs reads the generator name and its fields.
func parseContentArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	for _, name := range []string{
		"name", "company", "position", "start", "department", "manager",
		"text", "type", "count",
	} {
		if v := p.Flag(name); v != "" {
			args.Options[name] = v
		}
	}
	args.File = p.FlagAny("file", "f")
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--api":
			if i+1 < len(args) {
				i++
				parsedArgs.API = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--api=") {
				parsedArgs.API = strings.TrimPrefix(arg, "--api=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// VersionData is the JSON form of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		return NewJSONResponse("version", data).Print()
	}
	PrintVersion()
	return nil
}

// HandleHelp handles the "help" command. It also receives unknown
// commands, named in args.Subcommand, and reports them as usage errors.
func HandleHelp(args Args) error {
	if args.Subcommand != "" {
		return &UsageError{Message: fmt.Sprintf("unknown command %q", args.Subcommand)}
	}
	PrintUsage()
	return nil
}
