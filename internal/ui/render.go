package ui

import (
	"fmt"

	"github.com/idilsaglam/tarefas/internal/model"
)

const maxTitle = 80

// Header is the first panel line: name, done/pending/total counts and a
// progress bar below it.
func (t Theme) Header(title string, tasks []model.Task) []string {
	d, p := model.Stats(tasks)
	head := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(title),
		t.Success.Render(t.SymOK), d,
		t.Pending.Render(t.SymNotice), p,
		t.Accent.Render("Total"), len(tasks),
	)
	return []string{head, t.Muted.Render(ProgressBar(d, d+p, 28))}
}

// TaskLine renders one task: id, checkbox, title and description.
func (t Theme) TaskLine(task model.Task) string {
	box, color := t.BoxUnchecked, t.Muted
	if task.Done {
		box, color = t.BoxChecked, t.Success
	}
	line := fmt.Sprintf("%s %s %s",
		t.Muted.Render(fmt.Sprintf("#%-3d", task.ID)), color.Render(box), truncate(task.Title, maxTitle))
	if task.Description != "" {
		line += "  " + t.Muted.Render(truncate(task.Description, maxTitle))
	}
	return line
}

func (t Theme) TaskLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{t.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, t.TaskLine(task))
	}
	return out
}

// GroupLines lists pending tasks first, then done ones.
func (t Theme) GroupLines(tasks []model.Task) []string {
	section := func(name string, f model.Filter) []string {
		lines := []string{t.Accent.Render(name)}
		sub := model.Apply(tasks, f)
		if len(sub) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, t.TaskLines(sub)...)
	}
	lines := section("Pending", model.Pending)
	lines = append(lines, "")
	return append(lines, section("Done", model.Done)...)
}

// DetailLines is the long form used by the menu shell.
func (t Theme) DetailLines(task model.Task) []string {
	status := t.Pending.Render("no")
	if task.Done {
		status = t.Success.Render("yes")
	}
	return []string{
		fmt.Sprintf("ID: %d | Title: %s | Done: %s", task.ID, task.Title, status),
		fmt.Sprintf("Description: %s", task.Description),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
