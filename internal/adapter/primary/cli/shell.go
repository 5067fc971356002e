package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"shutdown-timer/internal/logging"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive launcher: type a duration to preview it, or run any subcommand",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(prompt, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "shutdown> ", "shell prompt")
	return cmd
}

func runInteractiveShell(prompt string, out io.Writer) error {
	historyFile := filepath.Join(os.TempDir(), "shutdown-timer-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sessionVerbosity := verbosity
	fmt.Fprintln(out, "Type a duration (10s, 5m, 2h, 1d) to preview, 'schedule <duration>' to confirm, 'help' for more, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Fprintln(out)
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if done := handleShellLine(strings.TrimSpace(line), out, &sessionVerbosity); done {
			return nil
		}
	}
}

// handleShellLine runs one line of input and reports whether the shell
// should exit.
func handleShellLine(line string, out io.Writer, sessionVerbosity *int) bool {
	switch line {
	case "":
		return false
	case "exit", "quit":
		fmt.Fprintln(out, "Bye!")
		return true
	case "help":
		printShellHelp(out)
		return false
	}

	tokens, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(out, "Parse error: %v\n", err)
		return false
	}
	logging.Tracef("shell tokens: %q", tokens)
	if len(tokens) == 0 {
		return false
	}

	switch {
	case tokens[0] == "log":
		if err := handleShellLog(tokens[1:], sessionVerbosity, out); err != nil {
			fmt.Fprintf(out, "log: %v\n", err)
		}
		return false
	case tokens[0] == "shell":
		fmt.Fprintln(out, "Already in the shell. Enter another command or 'exit' to quit.")
		return false
	}

	verbosity = *sessionVerbosity
	if err := executeArgs(tokens, out); err != nil {
		fmt.Fprintf(out, "command error: %v\n", err)
	}
	*sessionVerbosity = verbosity
	return false
}

func isSubcommand(root *cobra.Command, name string) bool {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

func executeArgs(args []string, out io.Writer) error {
	if len(args) == 0 {
		return nil
	}
	// NewRootCmd resets the -v counter while registering its flags.
	v := verbosity
	root := NewRootCmd()
	verbosity = v
	if !isSubcommand(root, args[0]) {
		// Anything that is not a command is a launcher query.
		args = append([]string{"query", "--"}, args...)
	}
	root.SetArgs(durationArgs(args))
	root.SetOut(out)
	root.SetErr(io.Discard)
	return root.Execute()
}

func handleShellLog(args []string, sessionVerbosity *int, out io.Writer) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Fprintf(out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		*sessionVerbosity = count
	case vcount > 0:
		*sessionVerbosity = vcount
	default:
		fmt.Fprintf(out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	verbosity = *sessionVerbosity
	logging.SetVerbosity(*sessionVerbosity)
	fmt.Fprintf(out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, `Examples:
  5m                          # preview a shutdown in 5 minutes
  schedule 2h                 # schedule a shutdown in 2 hours
  cancel                      # cancel the pending shutdown
  query                       # list the default suggestions
  config get                  # show the configuration
  config set --backend dryrun # update the configuration
  info                        # detected platform and commands
  log -vv                     # more logging
  log --show                  # current log level
  exit / quit                 # leave the shell`)
}
