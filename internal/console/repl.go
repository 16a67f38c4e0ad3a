package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const prompt = "docmanagement> "

// Run opens start and reads commands from in until EOF, exit or ctx is done.
//
// Commands available everywhere:
//
//	go <location>   open a location such as /folder?page=2 or /document/3/edit
//	back            return to the previous location
//	help            list the commands of the current view
//	exit | quit     leave the console
//
// Views add their own: list (more, sort, refresh), form (set, file, save,
// cancel) and delete (confirm, cancel).
func (a *App) Run(ctx context.Context, in io.Reader, start string) error {
	defer a.Close()

	if err := a.Open(ctx, start); err != nil {
		return err
	}
	a.settle(ctx)
	a.Render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit := a.Exec(ctx, scanner.Text())
		if quit {
			fmt.Fprintln(a.out, "Bye!")
			return nil
		}
	}
}

// Exec runs one command line and renders the result. It reports whether
// the user asked to leave.
func (a *App) Exec(ctx context.Context, line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := parts[0], parts[1:]

	var err error
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		a.help()
		return false
	case "go":
		if len(args) != 1 {
			err = errors.New("usage: go <location>")
			break
		}
		err = a.Open(ctx, args[0])
	case "back":
		err = a.Back(ctx)
	default:
		if a.view == nil {
			err = errUnknownCommand
			break
		}
		err = a.view.handle(ctx, cmd, args)
	}

	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return false
	}

	a.settle(ctx)
	if err != nil {
		a.logger.Debug("command failed", "command", cmd, "error", err)
		fmt.Fprintf(a.out, "! %s\n", describe(err))
	}
	a.Render()
	return false
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Available commands: go <location>, back, help, exit")
	if a.view != nil {
		if c := a.view.commands(); c != "" {
			fmt.Fprintln(a.out, "This view:", c)
		}
	}
}
