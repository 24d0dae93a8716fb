// Package interactive provides the interactive command-line front-end of
// the tracker.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"timetracker/internal/app"
	"timetracker/internal/usecase"
	"timetracker/internal/view"
)

// Submitter is the part of app.Loop the shell needs.
type Submitter interface {
	Submit(ctx context.Context, in app.Intent) (app.Result, error)
	OnRedraw(fn func(usecase.Snapshot))
}

// Shell reads commands, turns them into intents and prints the result.
type Shell struct {
	loop Submitter
	rl   *readline.Instance

	closeOnce sync.Once
	closeErr  error
}

// New creates the shell. Its Stdout can be handed to the logger before the
// loop exists.
func New() (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "|| 0:00:00> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{rl: rl}, nil
}

// Bind attaches the shell to loop and keeps the prompt in step with its
// redraws. Call before the loop starts running.
func (s *Shell) Bind(loop Submitter) {
	s.loop = loop
	loop.OnRedraw(func(snap usecase.Snapshot) {
		s.rl.SetPrompt(view.Prompt(snap))
		s.rl.Refresh()
	})
}

// Close releases the terminal and unblocks a pending Readline. It may be
// called more than once.
func (s *Shell) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.rl.Close() })
	return s.closeErr
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		cmd, _, _ := strings.Cut(input, " ")

		switch strings.ToLower(cmd) {
		case "help", "?":
			s.printHelp()
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		in, err := parseCommand(input)
		if err != nil {
			fmt.Fprintln(s.rl.Stdout(), err)
			continue
		}
		s.submit(ctx, in)
	}
}

var errNoPosition = errors.New("expected an entry number")

// parseCommand maps one input line to the intent it asks for.
func parseCommand(line string) (app.Intent, error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "start", "stop", "s":
		return app.StartStop{}, nil
	case "clear":
		return app.Clear{}, nil
	case "theme":
		return app.ToggleTheme{}, nil
	case "time", "t":
		return app.SetTime{Text: rest}, nil
	case "desc", "d":
		return app.SetDescription{Text: rest}, nil
	case "index", "n":
		return app.SetIndex{Text: rest}, nil
	case "apply", "a":
		return app.Apply{}, nil
	case "delete", "rm":
		pos, err := strconv.Atoi(rest)
		if err != nil {
			return nil, errNoPosition
		}
		return app.Delete{Position: pos}, nil
	case "copy", "cp":
		pos, err := strconv.Atoi(rest)
		if err != nil {
			return nil, errNoPosition
		}
		return app.Copy{Position: pos}, nil
	case "list", "ls", "status":
		return app.Refresh{}, nil
	default:
		return nil, fmt.Errorf("unknown command %q (type 'help' for commands)", cmd)
	}
}

func (s *Shell) submit(ctx context.Context, in app.Intent) {
	res, err := s.loop.Submit(ctx, in)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	s.print(in, res)
}

func (s *Shell) print(in app.Intent, res app.Result) {
	out := s.rl.Stdout()
	th := view.ThemeOf(res.Snapshot)
	if res.Err != nil {
		fmt.Fprintf(out, "Error: %v\n", res.Err)
	}
	switch in.(type) {
	case app.SetTime, app.SetDescription, app.SetIndex:
		fmt.Fprintln(out, view.Inputs(res.Snapshot, th))
		return
	case app.Copy:
		if res.Text != "" {
			fmt.Fprintf(out, "Copied: %s\n", res.Text)
			return
		}
	}
	if !res.Outcome.OK() && res.Outcome != usecase.Ignored {
		fmt.Fprintln(out, view.Rejection(res.Outcome, th))
	}
	fmt.Fprintln(out, view.Clock(res.Snapshot, th))
	fmt.Fprintln(out, view.Ledger(res.Snapshot, th))
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Time Tracker Commands:
  Clock:
    start, s           - Start or pause the clock
    clear              - Reset the clock to 0:00
    theme              - Toggle dark/light output

  Booking time:
    time <H:M|M>       - Amount to book (empty = everything elapsed)
    desc <text>        - Book into a new entry with this description
    index <n>          - ...or into existing entry number n
    apply, a           - Commit the amount

  Entries:
    list, ls           - Show clock and entries
    delete, rm <n>     - Delete entry n (later entries move up)
    copy, cp <n>       - Copy entry n's description to the clipboard

    help               - Show this help
    quit, exit, q      - Exit`)
}
