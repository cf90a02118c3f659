/*
rdx is a console utility checking grammars and parsing files with them.
Usage is

	rdx check [--start <rule>] [--dump] <grammar>
	rdx parse [--start <rule>] <grammar> <file>...
	rdx tree [--start <rule>] [--format indented|flat|none] <grammar> <file>

<grammar> is a YAML (.yaml, .yml) or EBNF (.ebnf) grammar description, see langdef package.

Global flags:

--config <file> loads TOML configuration with [parser], [log], and [output] sections;

-v increases log verbosity, may be repeated;

--log <file> writes log to file instead of stderr;

--no-color disables colored output.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ava12/rdx/internal/config"
	"github.com/ava12/rdx/langdef"
)

var log = commonlog.GetLogger("rdx.cmd")

type app struct {
	cfgFile   string
	logFile   string
	verbosity int
	noColor   bool
	start     string

	cfg    *config.Config
	styles *styles
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{}
	e := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if e != nil {
		st := a.styles
		if st == nil {
			st = newStyles(false)
		}
		fmt.Fprintln(os.Stderr, st.err.Render(e.Error()))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rdx",
		Short:         "Check grammars and parse files with them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "TOML configuration file")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&a.logFile, "log", "", "log file, default is stderr")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.start, "start", "s", "", "start rule, default is the grammar start rule")

	cmd.AddCommand(newCheckCmd(a), newParseCmd(a), newTreeCmd(a))
	return cmd
}

// configure loads configuration, flags override configuration values.
func (a *app) configure(cmd *cobra.Command) error {
	if a.cfgFile == "" {
		a.cfg = config.Default()
	} else {
		cfg, e := config.Load(a.cfgFile)
		if e != nil {
			return e
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		a.cfg.Log.Verbosity = a.verbosity
	}
	if flags.Changed("log") {
		a.cfg.Log.File = a.logFile
	}
	if a.noColor {
		a.cfg.Output.Color = false
	}
	if a.start != "" {
		a.cfg.Parser.Start = a.start
	}

	var path *string
	if a.cfg.Log.File != "" {
		path = &a.cfg.Log.File
	}
	commonlog.Configure(a.cfg.Log.Verbosity, path)
	a.styles = newStyles(a.cfg.Output.Color)
	log.Debugf("configuration: %+v", *a.cfg)
	return nil
}

func (a *app) load(fileName string) (*langdef.Language, error) {
	return langdef.Load(fileName, a.cfg.Parser.Start)
}
