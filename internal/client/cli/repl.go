package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = "Available commands: (l)ist, refresh, add <title>, edit <id>, title <text>, file <path>, save, cancel, toggle <id>, delete <id>, exit"

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Add(ctx context.Context, title, path string) error
	Edit(ctx context.Context, ref string) error
	SetTitle(ctx context.Context, title string) error
	SetFile(ctx context.Context, path string) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error
	Toggle(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
}

// runREPL reads commands from scanner until EOF, "exit" or "quit".
//
// The prompt, and the file prompt after "add", are printed only when
// interactive is true; the file path line is read either way so scripted
// input behaves the same as typed input.
//
// Errors returned by command handlers are ignored here; handlers report
// them through the rendered view.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, interactive bool) {
	for {
		if interactive {
			printlnFn(fmt.Sprintf("taskpad %s> ", statusFn()))
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		rest := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "add":
			if rest == "" {
				printlnFn("Usage: add <title>")
				continue
			}
			if interactive {
				printlnFn("Attach file (path, empty to skip):")
			}
			path := ""
			if scanner.Scan() {
				path = strings.TrimSpace(scanner.Text())
			}
			_ = a.Add(ctx, rest, path)

		case "edit":
			if rest == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, rest)

		case "title":
			if rest == "" {
				printlnFn("Usage: title <text>")
				continue
			}
			_ = a.SetTitle(ctx, rest)

		case "file":
			if rest == "" {
				printlnFn("Usage: file <path>")
				continue
			}
			_ = a.SetFile(ctx, rest)

		case "save":
			_ = a.Save(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "toggle":
			if rest == "" {
				printlnFn("Usage: toggle <id>")
				continue
			}
			_ = a.Toggle(ctx, rest)

		case "delete":
			if rest == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, rest)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
