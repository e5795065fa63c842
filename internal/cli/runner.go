// Package cli dispatches the non-interactive subcommands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aklinde/tick/internal/model"
	"github.com/aklinde/tick/internal/store"
	"github.com/aklinde/tick/internal/tui"
	"github.com/aklinde/tick/internal/ui"
)

// Options carry the opened store, output tuning from root flags, and
// the writers commands print to. Nil writers default to stdout/stderr.
type Options struct {
	Store *store.Store
	Group bool // list grouped by pending/done
	Out   io.Writer
	Err   io.Writer
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls":
		return doList(opt)

	case "ui":
		if err := tui.Run(opt.Store); err != nil {
			ui.Fail(opt.Err, "ui: "+err.Error())
			return 1
		}
		return 0

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: tick add <title...>")
			return 2
		}
		title := strings.Join(a, " ")
		if !model.ValidTitle(title) {
			ui.Fail(opt.Err, "add: empty title")
			return 2
		}
		opt.Store.Add(title)
		return finish(opt, "added")

	case "done":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tick done <index>")
			return 2
		}
		id, ok := idAt(opt, "done", a[0])
		if !ok {
			return 2
		}
		opt.Store.Toggle(id)
		return finish(opt, "toggled")

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: tick rm <index>")
			return 2
		}
		id, ok := idAt(opt, "rm", a[0])
		if !ok {
			return 2
		}
		opt.Store.Remove(id)
		return finish(opt, "removed")

	case "edit":
		if len(a) < 2 {
			ui.Fail(opt.Err, "usage: tick edit <index> <title...>")
			return 2
		}
		title := strings.Join(a[1:], " ")
		if !model.ValidTitle(title) {
			ui.Fail(opt.Err, "edit: empty title")
			return 2
		}
		id, ok := idAt(opt, "edit", a[0])
		if !ok {
			return 2
		}
		opt.Store.Rename(id, title)
		return finish(opt, "renamed")
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `tick - todos on a single page

Usage:
  tick [flags] <subcommand> [args]

Subcommands:
  ui                       Open the interactive page
  ls                       List tasks
  add <title...>           Add a task (title can be multiple words)
  done <index>             Toggle the task at 1-based index
  edit <index> <title...>  Rename the task at 1-based index
  rm <index>               Remove the task at 1-based index
  help                     Show this help

Flags:
  --data-dir <dir>    directory holding the todo data (default ~/.tick)
  --quota-bytes <n>   per-key storage cap in bytes, 0 for none
  --theme <name>      classic, neon, or mono
  --group             group ls output by pending/done
  --log-level <lvl>   debug, info, warn, or error
  --log-format <fmt>  text, json, or logfmt
  --log-timestamps    include timestamps in log output

Examples:
  tick add "Buy milk"
  tick ls
  tick done 2
  tick edit 2 "Buy oat milk"
  tick rm 3
`)
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	items := opt.Store.Items()
	th := ui.Current()

	// Header + progress
	done, pending := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), len(items),
	)

	lines := []string{header}
	if errMsg := opt.Store.Err(); errMsg != "" {
		lines = append(lines, th.Error.Render("! "+errMsg))
	}
	lines = append(lines, th.Muted.Render(ui.ProgressBar(done, done+pending, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Muted.Render("Tip: add with `tick add \"Buy milk\"`"))

	fmt.Fprintln(opt.Out, ui.Panel(lines))
	return 0
}

// finish reports the outcome of a mutation: the in-memory change always
// went through, but a persist failure means it will not survive this
// process, so that still exits nonzero.
func finish(opt Options, verb string) int {
	if errMsg := opt.Store.Err(); errMsg != "" {
		ui.Fail(opt.Err, errMsg)
		return 1
	}
	ui.OK(opt.Out, verb)
	return 0
}

// idAt resolves a 1-based display index to the entry id.
func idAt(opt Options, cmd, raw string) (string, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		ui.Fail(opt.Err, cmd+": not a number: "+raw)
		return "", false
	}
	items := opt.Store.Items()
	if n < 1 || n > len(items) {
		ui.Fail(opt.Err, fmt.Sprintf("index out of range: have %d, got %d", len(items), n))
		fmt.Fprintln(opt.Err, ui.Current().Muted.Render("Hint: run `tick ls` to see valid indexes"))
		return "", false
	}
	return items[n-1].ID, true
}

// -------------- rendering helpers --------------

func flatLines(items []model.Todo) []string {
	th := ui.Current()
	if len(items) == 0 {
		return []string{th.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(items))
	for i, t := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box := th.Muted.Render(th.BoxUnchecked)
		title := t.Title
		if utf8.RuneCountInString(title) > 80 {
			title = string([]rune(title)[:77]) + "..."
		}
		if t.Completed {
			box = th.Success.Render(th.BoxChecked)
			title = th.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s", th.Muted.Render(idx), box, title))
	}
	return out
}

func groupLines(items []model.Todo) []string {
	th := ui.Current()
	var pend, done []model.Todo
	for _, t := range items {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
