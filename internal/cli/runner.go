package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/acampagne/todo/internal/model"
	"github.com/acampagne/todo/internal/store/jsonstore"
	"github.com/acampagne/todo/internal/ui"
)

// Options tune behavior from root flags and config.
type Options struct {
	File    string // storage file path
	Theme   string // classic, neon or mono
	NoColor bool
	Verbose bool
	Group   bool // list grouped by pending/done
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	ui.SetTheme(opt.Theme)
	if opt.NoColor {
		ui.SetColorDisabled(true)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "todo",
	})
	if opt.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	r := &runner{
		store: jsonstore.New(opt.File),
		opt:   opt,
		log:   logger,
	}

	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todo add <title> [description...]")
			return 2
		}
		return r.add(a[0], strings.Join(a[1:], " "))

	case "ls", "list":
		return r.list(a)

	case "done", "complete":
		id, code := parseID(cmd, a)
		if code != 0 {
			return code
		}
		return r.complete(id)

	case "undone", "uncomplete":
		id, code := parseID(cmd, a)
		if code != 0 {
			return code
		}
		return r.uncomplete(id)

	case "rm", "delete":
		id, code := parseID(cmd, a)
		if code != 0 {
			return code
		}
		return r.remove(id)

	case "clear":
		return r.clearCompleted()

	case "stats":
		return r.stats()

	case "check":
		return r.check()

	case "ui":
		return r.interactive()
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todo - a file-backed todo CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <title> [description...]   Add a new item
  ls [done|pending]              List items, optionally filtered
  done <id>                      Mark an item completed
  undone <id>                    Mark an item pending again
  rm <id>                        Delete an item
  clear                          Delete all completed items
  stats                          Show collection statistics
  check                          Validate the storage file
  ui                             Interactive list

Flags:
  -file <path>    storage file (default todos.json, env TODO_FILE)
  -theme <name>   classic, neon or mono (env TODO_THEME)
  -no-color       disable colored output (env NO_COLOR)
  -group          group ls output by pending/done
  -verbose        debug logging

Examples:
  todo add "Buy milk" "two bottles, skimmed"
  todo ls pending
  todo done 2
  todo rm 3
`)
}

func parseID(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: todo %s <id>", cmd))
		return 0, 2
	}
	id, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return id, 0
}

// -------------- subcommand impls ----------------

type runner struct {
	store *jsonstore.Store
	opt   Options
	log   *log.Logger
}

// fail renders err with a hint matching its kind and picks the exit code.
func (r *runner) fail(op string, err error) int {
	ui.Fail(op + ": " + err.Error())
	var nferr *jsonstore.NotFoundError
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return 2
	case errors.As(err, &nferr):
		fmt.Fprintln(os.Stderr, ui.Hint("Hint: run `todo ls` to see valid ids"))
		return 1
	}
	return 1
}

func (r *runner) add(title, description string) int {
	item, err := r.store.Add(title, description)
	if err != nil {
		return r.fail("add", err)
	}
	r.log.Debug("item persisted", "id", item.ID, "file", r.store.Path())
	ui.OK(fmt.Sprintf("added #%d: %s", item.ID, item.Title))
	if item.Description != "" {
		fmt.Println(ui.Hint("  " + item.Description))
	}
	return 0
}

func (r *runner) list(a []string) int {
	var filter *bool
	if len(a) > 0 {
		switch a[0] {
		case "done":
			t := true
			filter = &t
		case "pending":
			f := false
			filter = &f
		default:
			ui.Fail("usage: todo ls [done|pending]")
			return 2
		}
	}

	items, err := r.store.List(filter)
	if err != nil {
		return r.fail("ls", err)
	}
	st, err := r.store.Stats()
	if err != nil {
		return r.fail("ls", err)
	}
	r.log.Debug("collection loaded", "items", st.Total, "file", r.store.Path())

	// Header + progress over the whole collection, filtered or not.
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, ui.Current().SymDone), st.Completed,
		ui.C(ui.Current().Pending, ui.Current().SymPending), st.Pending,
		ui.C(ui.Current().Accent, "Total"), st.Total,
	)

	lines := []string{
		header,
		ui.C(ui.Current().Muted, ui.ProgressBar(st.Completed, st.Total, 28)),
		"",
	}
	if r.opt.Group && filter == nil {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, itemLines(items)...)
	}
	ui.Panel(lines)
	return 0
}

func (r *runner) complete(id int) int {
	item, err := r.store.Complete(id)
	if err != nil {
		return r.fail("done", err)
	}
	ui.OK(fmt.Sprintf("completed #%d: %s", item.ID, item.Title))
	return 0
}

func (r *runner) uncomplete(id int) int {
	item, err := r.store.Uncomplete(id)
	if err != nil {
		return r.fail("undone", err)
	}
	ui.OK(fmt.Sprintf("back to pending #%d: %s", item.ID, item.Title))
	return 0
}

func (r *runner) remove(id int) int {
	item, err := r.store.Delete(id)
	if err != nil {
		return r.fail("rm", err)
	}
	ui.OK(fmt.Sprintf("removed #%d: %s", item.ID, item.Title))
	return 0
}

func (r *runner) clearCompleted() int {
	count, err := r.store.ClearCompleted()
	if err != nil {
		return r.fail("clear", err)
	}
	if count == 0 {
		fmt.Println(ui.Hint("nothing to clear"))
		return 0
	}
	ui.OK(fmt.Sprintf("cleared %d completed item(s)", count))
	return 0
}

func (r *runner) stats() int {
	st, err := r.store.Stats()
	if err != nil {
		return r.fail("stats", err)
	}
	lines := []string{
		ui.C(ui.Current().Title, "Todo statistics"),
		"",
		fmt.Sprintf("Total:     %d", st.Total),
		ui.C(ui.Current().Success, fmt.Sprintf("Completed: %d", st.Completed)),
		ui.C(ui.Current().Pending, fmt.Sprintf("Pending:   %d", st.Pending)),
	}
	if st.Total > 0 {
		rate := float64(st.Completed) / float64(st.Total) * 100
		lines = append(lines,
			ui.C(ui.Current().Accent, fmt.Sprintf("Done rate: %.1f%%", rate)),
			ui.C(ui.Current().Muted, ui.ProgressBar(st.Completed, st.Total, 28)),
		)
	}
	ui.Panel(lines)
	return 0
}

func (r *runner) check() int {
	res := r.store.Check()
	for _, w := range res.Warnings {
		r.log.Warn(w)
	}
	if res.Valid {
		msg := fmt.Sprintf("%s is valid", r.store.Path())
		if res.UsedSchema {
			msg += " (schema checked)"
		}
		ui.OK(msg)
		return 0
	}
	for _, err := range res.Errors {
		ui.Fail(err.Error())
	}
	return 1
}

func (r *runner) interactive() int {
	items, err := r.store.Load()
	if err != nil {
		return r.fail("ui", err)
	}
	if err := runInteractiveList(r.store, items); err != nil {
		return r.fail("ui", err)
	}
	return 0
}

// -------------- rendering helpers --------------

func itemLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		if it.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
		}
		title := it.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			ui.C(ui.Current().Muted, fmt.Sprintf("#%-3d", it.ID)),
			ui.C(color, box),
			title,
			ui.C(ui.Current().Muted, it.CreatedAt.Format("2006-01-02 15:04")),
		))
		if it.Description != "" {
			out = append(out, ui.C(ui.Current().Muted, "      "+it.Description))
		}
	}
	return out
}

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(done)...)
	}
	return lines
}
