package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tarefas/internal/model"
)

type listOptions struct {
	Filter string
	Group  bool
	Format string
}

func NewListCommand(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Example: `  tarefas ls
  tarefas ls --filter pending
  tarefas ls --group
  tarefas ls --format json`,
		Args: usageArgs(cobra.NoArgs, "usage: tarefas ls [--filter all|done|pending] [--group] [--format text|json|yaml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(opts.Filter)
			if err != nil {
				return WrapExitError(ExitUsage, "ls", err)
			}
			format := strings.ToLower(opts.Format)
			if !contains(validFormats, format) {
				return NewExitError(ExitUsage, fmt.Sprintf("ls: invalid format %q: must be one of %v", opts.Format, validFormats))
			}

			tasks, err := a.store.Query(f)
			if err != nil {
				return storeError("ls", err)
			}
			a.log.Debug("listed", "filter", f, "count", len(tasks))

			if format != "text" {
				return writeTasks(cmd.OutOrStdout(), format, tasks)
			}

			lines := a.theme.Header(listTitle(f), tasks)
			lines = append(lines, "")
			if opts.Group {
				lines = append(lines, a.theme.GroupLines(tasks)...)
			} else {
				lines = append(lines, a.theme.TaskLines(tasks)...)
			}
			lines = append(lines, "", a.theme.Muted.Render("Tip: add with `tarefas add \"Buy milk\"`"))
			fmt.Fprintln(cmd.OutOrStdout(), a.theme.Panel(lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "all", "which tasks to show (all|done|pending)")
	cmd.Flags().BoolVar(&opts.Group, "group", false, "group output by pending/done")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	return cmd
}

func listTitle(f model.Filter) string {
	switch f {
	case model.Done:
		return "Done tasks"
	case model.Pending:
		return "Pending tasks"
	}
	return "Tasks"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
