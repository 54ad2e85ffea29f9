package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	AddAt(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Reflect(ctx context.Context, args []string) error
	Whoami(ctx context.Context) error
	Export(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  add                     write today's entry
  addat [when]            write a timestamped entry ("addat yesterday 9pm")
  (l)ist [yyyy [mm [dd]]] list entries, optionally for a year, month or day
  show [id]               show an entry (today's by default)
  sync                    synchronize with the server
  status                  show connectivity and the last sync
  reflect [id]            ask for a reflection on an entry
  export yyyy mm [file]   render a month of entries to HTML
  whoami                  show the signed-in user
  exit | quit             leave the program`

// runREPL starts a simple read–eval–print loop for the journal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
// Commands read follow-up input (entry text, confirmations) from the same
// reader, so the REPL and the prompts never compete for buffered stdin.
//
// Any errors returned by command handlers are ignored here; handlers report
// and log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(promptStyle.Render(fmt.Sprintf("journal %s> ", statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "add":
			_ = a.Add(ctx)

		case "addat":
			_ = a.AddAt(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "sync":
			_ = a.Sync(ctx)

		case "status":
			_ = a.Status(ctx)

		case "reflect":
			_ = a.Reflect(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "whoami":
			_ = a.Whoami(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
