package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tarefas/internal/model"
	"github.com/idilsaglam/tarefas/internal/store/jsonstore"
	"github.com/idilsaglam/tarefas/internal/ui"
)

func NewMenuCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive numbered menu (the default with no subcommand)",
		Args:  usageArgs(cobra.NoArgs, "usage: tarefas menu"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, a)
		},
	}
}

func runMenu(cmd *cobra.Command, a *app) error {
	sh := NewShell(a.store, a.theme, a.log, cmd.InOrStdin(), cmd.OutOrStdout())
	return sh.Run()
}

// Shell is the numbered text menu. Input and output are injected; it never
// touches the process terminal directly.
type Shell struct {
	store *jsonstore.Store
	theme ui.Theme
	log   *log.Logger
	in    *bufio.Scanner
	out   io.Writer
}

func NewShell(store *jsonstore.Store, theme ui.Theme, logger *log.Logger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store: store,
		theme: theme,
		log:   logger,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

const menuText = `
===== TASKS =====
1. Create a task
2. List all tasks
3. List done tasks
4. List pending tasks
5. Complete a task
6. Exit`

// Run loops until the user picks exit or input ends.
func (s *Shell) Run() error {
	for {
		fmt.Fprintln(s.out, s.theme.Title.Render(menuText))
		opt, ok := s.prompt("Choose an option: ")
		if !ok {
			return s.in.Err()
		}

		switch opt {
		case "1":
			if !s.create() {
				return s.in.Err()
			}
		case "2":
			s.list(model.All)
		case "3":
			s.list(model.Done)
		case "4":
			s.list(model.Pending)
		case "5":
			if !s.complete() {
				return s.in.Err()
			}
		case "6":
			fmt.Fprintln(s.out, "Bye.")
			return nil
		default:
			s.theme.Fail(s.out, "invalid option, try again")
		}
	}
}

// prompt writes label and reads one trimmed line. ok is false at end of input.
func (s *Shell) prompt(label string) (line string, ok bool) {
	line, ok = s.promptRaw(label)
	return strings.TrimSpace(line), ok
}

// promptRaw is prompt without trimming; only a CRLF line ending is dropped.
func (s *Shell) promptRaw(label string) (line string, ok bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSuffix(s.in.Text(), "\r"), true
}

func (s *Shell) create() bool {
	title, ok := s.prompt("Title: ")
	if !ok {
		return false
	}
	description, ok := s.promptRaw("Description: ")
	if !ok {
		return false
	}

	task, err := s.store.Create(title, description)
	if err != nil {
		s.log.Debug("create failed", "err", err)
		s.theme.Fail(s.out, describe(err))
		return true
	}
	s.log.Debug("task created", "id", task.ID)
	s.theme.OK(s.out, fmt.Sprintf("task #%d created", task.ID))
	return true
}

func (s *Shell) list(f model.Filter) {
	tasks, err := s.store.Query(f)
	if err != nil {
		s.log.Debug("query failed", "filter", f, "err", err)
		s.theme.Fail(s.out, describe(err))
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(s.out, s.theme.Muted.Render("No tasks found."))
		return
	}
	for _, t := range tasks {
		for _, line := range s.theme.DetailLines(t) {
			fmt.Fprintln(s.out, line)
		}
		fmt.Fprintln(s.out, s.theme.Muted.Render("---"))
	}
}

func (s *Shell) complete() bool {
	raw, ok := s.prompt("ID of the task to complete: ")
	if !ok {
		return false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.theme.Fail(s.out, "not a number: "+raw)
		return true
	}

	out, err := s.store.Complete(id)
	if err != nil {
		s.log.Debug("complete failed", "id", id, "err", err)
		s.theme.Fail(s.out, describe(err))
		return true
	}
	s.log.Debug("complete", "id", id, "outcome", out)
	switch out {
	case jsonstore.Completed:
		s.theme.OK(s.out, fmt.Sprintf("task #%d marked as done", id))
	case jsonstore.AlreadyComplete:
		s.theme.Notice(s.out, fmt.Sprintf("task #%d is already done", id))
	case jsonstore.NotFound:
		s.theme.Fail(s.out, fmt.Sprintf("task #%d not found", id))
	}
	return true
}
