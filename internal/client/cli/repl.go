package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const helpText = `Available commands:
  ping                       check the server
  seal                       write a letter that opens later
  void                       write a letter nobody will read
  open <id>                  read a letter whose time has come
  openable                   letters ready to be opened
  mine                       letters sealed from this machine
  identity [new]             show or create a gallery identity
  post [--image <path>]      share something in the gallery
  gallery [limit] [offset]   browse the gallery
  applaud <id>               applaud a gallery post
  exit | quit                leave`

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Ping(ctx context.Context) error
	Seal(ctx context.Context) error
	Void(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Openable(ctx context.Context) error
	Mine(ctx context.Context) error
	ShowIdentity(ctx context.Context) error
	NewIdentity(ctx context.Context) error
	Post(ctx context.Context, imagePath string) error
	Gallery(ctx context.Context, limit, offset int) error
	Applaud(ctx context.Context, id string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF, on "exit" or "quit", or when ctx is cancelled.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "lightway %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "ping":
			_ = a.Ping(ctx)

		case "seal":
			_ = a.Seal(ctx)

		case "void":
			_ = a.Void(ctx)

		case "open":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: open <id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "openable":
			_ = a.Openable(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "identity":
			switch {
			case len(args) == 0:
				_ = a.ShowIdentity(ctx)
			case len(args) == 1 && args[0] == "new":
				_ = a.NewIdentity(ctx)
			default:
				fmt.Fprintln(w, "Usage: identity [new]")
			}

		case "post":
			imagePath, ok := parsePostArgs(args)
			if !ok {
				fmt.Fprintln(w, "Usage: post [--image <path>]")
				continue
			}
			_ = a.Post(ctx, imagePath)

		case "gallery":
			limit, offset, ok := parsePage(args)
			if !ok {
				fmt.Fprintln(w, "Usage: gallery [limit] [offset]")
				continue
			}
			_ = a.Gallery(ctx, limit, offset)

		case "applaud":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: applaud <id>")
				continue
			}
			_ = a.Applaud(ctx, args[0])

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}

func parsePostArgs(args []string) (string, bool) {
	switch {
	case len(args) == 0:
		return "", true
	case len(args) == 2 && args[0] == "--image":
		return args[1], true
	case len(args) == 1 && strings.HasPrefix(args[0], "--image="):
		path := strings.TrimPrefix(args[0], "--image=")
		return path, path != ""
	}
	return "", false
}

// parsePage returns 0 for omitted values; the server applies its defaults.
func parsePage(args []string) (limit, offset int, ok bool) {
	if len(args) > 2 {
		return 0, 0, false
	}
	vals := make([]int, 2)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], true
}
