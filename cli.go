package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nesinspect/log"
)

type mode byte

const (
	infoMode   mode = iota // Show ROM header
	chrMode                // Export pattern tables
	disasmMode             // Disassemble interrupt handlers
	dumpMode               // Dump everything as JSON
	batchMode              // Check many ROMs
	configMode             // Show/save configuration
)

type (
	CLI struct {
		Info   Info      `cmd:"" help:"Show ROM header."`
		CHR    CHR       `cmd:"" name:"chr" help:"Export CHR pattern tables as PNG images."`
		Disasm Disasm    `cmd:"" help:"Disassemble the interrupt handlers."`
		Dump   Dump      `cmd:"" help:"Dump the decoded ROM as JSON."`
		Batch  Batch     `cmd:"" help:"Check many ROMs at once."`
		Config ConfigCmd `cmd:"" help:"Show the effective configuration."`

		Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		ConfigFile string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`

		mode mode
	}

	Info struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	CHR struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`

		Out     string `name:"out" short:"o" help:"Output directory." type:"path" default:"."`
		Scale   int    `name:"scale" help:"${scale_help}"`
		Palette string `name:"palette" help:"${palette_help}" placeholder:"c0,c1,c2,c3"`
	}

	Disasm struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`

		MaxSteps int      `name:"max-steps" help:"${maxsteps_help}"`
		Reset    bool     `name:"reset" help:"Also disassemble the RESET handler."`
		Strict   bool     `name:"strict" help:"Fail if a handler doesn't end with RTI."`
		Out      *outfile `name:"out" short:"o" help:"Write listing to file." placeholder:"FILE|stdout|stderr"`
	}

	Dump struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`

		NoDisasm bool `name:"no-disasm" help:"Skip disassembly."`
		Indent   int  `name:"indent" help:"Indent JSON output." default:"0"`
	}

	Batch struct {
		RomPaths []string `arg:"" name:"/path/to/rom" type:"existingfile"`

		Jobs int `name:"jobs" short:"j" help:"Number of ROMs decoded in parallel (default: number of CPUs)."`
	}

	ConfigCmd struct {
		Save bool `name:"save" help:"Write it to the configuration directory."`
	}
)

var vars = kong.Vars{
	"log_help":      "Enable logging for specified modules.",
	"config_help":   "Configuration file (default: config.toml in the user configuration directory).",
	"scale_help":    "Scale factor of exported images (default: from configuration).",
	"palette_help":  "Comma-separated list of 4 #RRGGBB colors (default: from configuration).",
	"maxsteps_help": "Maximum number of instructions per handler (default: from configuration).",
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("nesinspect"),
		kong.Description("Inspect iNES and NES 2.0 ROM images."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
}

func parseArgs(args []string) CLI {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	cli.mode = modeOf(ctx.Command())
	return cli
}

func modeOf(cmd string) mode {
	switch strings.Fields(cmd)[0] {
	case "chr":
		return chrMode
	case "disasm":
		return disasmMode
	case "dump":
		return dumpMode
	case "batch":
		return batchMode
	case "config":
		return configMode
	}
	return infoMode
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf("%s.\n\t%s", fmt.Sprintf(format, args...), err)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
