// Package cli holds the cobra command tree. Every invocation is one session:
// --import seeds it, the subcommand runs, --export saves the result.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"todomvc/pkg/commands"
	"todomvc/pkg/config"
	"todomvc/pkg/session"
	"todomvc/pkg/utils"
)

// Version is set at build time
var Version = "dev"

// TUIRunner runs the interactive interface on a session
type TUIRunner func(s *session.Session) error

// Options are the flags shared by all commands
type Options struct {
	ConfigPath   string
	Verbose      bool
	ImportFile   string
	ImportFormat string
	ExportFile   string
	ExportType   string
}

type app struct {
	opts   Options
	sess   *session.Session
	runTUI TUIRunner
}

// NewRootCmd builds the command tree. runTUI is called when no subcommand is given.
func NewRootCmd(runTUI TUIRunner) *cobra.Command {
	root, _ := newRoot(runTUI)
	return root
}

func newRoot(runTUI TUIRunner) (*cobra.Command, *app) {
	a := &app{runTUI: runTUI}

	root := &cobra.Command{
		Use:           "todomvc",
		Short:         "A to-do list for the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.runTUI == nil {
				return errors.New("no interactive interface available")
			}
			return a.runTUI(a.sess)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.ConfigPath, "config", "", "path to configuration file")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&a.opts.ImportFile, "import", "", "import tasks from file before running")
	flags.StringVar(&a.opts.ImportFormat, "import-format", "", "import format (txt, json, external); detected from the file name when empty")
	flags.StringVar(&a.opts.ExportFile, "export", "", "export tasks to file after running")
	flags.StringVar(&a.opts.ExportType, "type", commands.ExportJSON, "export file type (json, txt, external)")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.doneCmd(true),
		a.doneCmd(false),
		a.deleteCmd(),
		a.renameCmd(),
		a.editCmd(),
		a.categoryCmd(),
		a.purgeCmd(),
		a.adaptCmd(),
		a.factoryCmd(),
	)
	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.SetVersionTemplate("todomvc {{.Version}}\n")
	return root, a
}

// normalizeFlagName lets --import_format stand in for --import-format
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func (a *app) start(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := utils.InitLogger(a.opts.Verbose, cfg.LogFile); err != nil {
		return err
	}

	a.sess, err = session.New(cfg)
	if err != nil {
		return err
	}

	if a.opts.ImportFile != "" {
		n, err := commands.Import(a.sess.Controller, a.opts.ImportFile, a.opts.ImportFormat)
		if err != nil {
			return err
		}
		utils.Log("imported tasks", "file", a.opts.ImportFile, "count", n)
	}
	return nil
}

func (a *app) finish(cmd *cobra.Command) error {
	if a.opts.ExportFile == "" {
		return nil
	}
	n, err := commands.Export(cmd.Context(), a.sess.Controller, a.opts.ExportFile, a.opts.ExportType)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Successfully exported %d task(s) to %s\n", n, a.opts.ExportFile)
	return nil
}

func (a *app) close() {
	if a.sess != nil {
		if err := a.sess.Close(); err != nil {
			utils.Logger().Error("closing session", "error", err)
		}
		a.sess = nil
	}
	utils.CloseLogger()
}

// Execute runs the command line and returns the process exit code
func Execute(runTUI TUIRunner) int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, runTUI)
}

func run(args []string, in io.Reader, out, errOut io.Writer, runTUI TUIRunner) int {
	root, a := newRoot(runTUI)
	defer a.close()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}
	return 0
}
