package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tarefas/internal/store/jsonstore"
)

func NewDoneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Short:   "Mark the task with the given id as done",
		Example: "  tarefas done 2",
		Args:    usageArgs(cobra.ExactArgs(1), "usage: tarefas done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return NewExitError(ExitUsage, "done: not a number: "+args[0])
			}

			out, err := a.store.Complete(id)
			if err != nil {
				return storeError("done", err)
			}
			a.log.Debug("complete", "id", id, "outcome", out)

			switch out {
			case jsonstore.Completed:
				a.theme.OK(cmd.OutOrStdout(), fmt.Sprintf("completed #%d", id))
			case jsonstore.AlreadyComplete:
				a.theme.Notice(cmd.OutOrStdout(), fmt.Sprintf("#%d is already complete", id))
			case jsonstore.NotFound:
				return NewExitError(ExitNotFound, fmt.Sprintf("task #%d not found; run `tarefas ls` to see ids", id))
			}
			return nil
		},
	}
}
