package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/idilsaglam/tarefas/internal/model"
)

// Naming selects the key set written to the data file.
// Loading accepts both sets regardless of Naming.
type Naming string

const (
	NamingEnglish    Naming = "en" // id, title, description, done
	NamingPortuguese Naming = "pt" // id, titulo, descricao, concluida
)

func ParseNaming(s string) (Naming, error) {
	switch Naming(strings.ToLower(strings.TrimSpace(s))) {
	case NamingEnglish:
		return NamingEnglish, nil
	case NamingPortuguese:
		return NamingPortuguese, nil
	}
	return "", fmt.Errorf("unknown naming %q (want en or pt)", s)
}

// record is one element as found on disk, under either key set.
// English keys win when an element carries both.
type record struct {
	ID          int     `json:"id"`
	Title       *string `json:"title"`
	Titulo      *string `json:"titulo"`
	Description *string `json:"description"`
	Descricao   *string `json:"descricao"`
	Done        *bool   `json:"done"`
	Concluida   *bool   `json:"concluida"`
}

func (r record) task() model.Task {
	t := model.Task{ID: r.ID}
	switch {
	case r.Title != nil:
		t.Title = *r.Title
	case r.Titulo != nil:
		t.Title = *r.Titulo
	}
	switch {
	case r.Description != nil:
		t.Description = *r.Description
	case r.Descricao != nil:
		t.Description = *r.Descricao
	}
	switch {
	case r.Done != nil:
		t.Done = *r.Done
	case r.Concluida != nil:
		t.Done = *r.Concluida
	}
	return t
}

// tarefa is the Portuguese on-disk layout.
type tarefa struct {
	ID        int    `json:"id"`
	Titulo    string `json:"titulo"`
	Descricao string `json:"descricao"`
	Concluida bool   `json:"concluida"`
}

func decodeTasks(b []byte) ([]model.Task, error) {
	var recs []record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	tasks := make([]model.Task, 0, len(recs))
	for _, r := range recs {
		tasks = append(tasks, r.task())
	}
	return tasks, nil
}

// encodeTasks renders tasks as an indented JSON array with a trailing newline.
func encodeTasks(tasks []model.Task, n Naming) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	var v any = tasks
	if n == NamingPortuguese {
		out := make([]tarefa, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, tarefa{ID: t.ID, Titulo: t.Title, Descricao: t.Description, Concluida: t.Done})
		}
		v = out
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return buf.Bytes(), nil
}
