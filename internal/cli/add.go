package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewAddCommand(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task (title can be multiple words)",
		Example: `  tarefas add Buy milk -d "2%"
  tarefas add "Walk dog"`,
		Args: usageArgs(cobra.MinimumNArgs(1), "usage: tarefas add <title...> [-d description]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.store.Create(strings.Join(args, " "), description)
			if err != nil {
				return storeError("add", err)
			}
			a.log.Debug("task created", "id", task.ID)
			a.theme.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d %s", task.ID, task.Title))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	return cmd
}
