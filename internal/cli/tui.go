package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tarefas/internal/model"
	"github.com/idilsaglam/tarefas/internal/store/jsonstore"
	"github.com/idilsaglam/tarefas/internal/ui"
)

func NewTUICommand(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive task list",
		Args:  usageArgs(cobra.NoArgs, "usage: tarefas tui [--filter all|done|pending]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return WrapExitError(ExitUsage, "tui", err)
			}
			m, err := newTUIModel(a.store, a.theme, a.log, f)
			if err != nil {
				return storeError("tui", err)
			}
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return WrapExitError(ExitFailure, "tui", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "initial filter (all|done|pending)")
	return cmd
}

// taskItem adapts model.Task to list.Item.
type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Title + " " + i.task.Description }

// taskDelegate renders one task per line.
type taskDelegate struct {
	theme ui.Theme
}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = lipgloss.NewStyle().Bold(true).Reverse(true).Render("> ")
	}
	fmt.Fprint(w, prefix+d.theme.TaskLine(it.task))
}

var (
	tabKey      = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter"))
	completeKey = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "complete"))
	addKey      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	reloadKey   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
)

type tuiModel struct {
	store  *jsonstore.Store
	theme  ui.Theme
	log    *log.Logger
	filter model.Filter
	list   list.Model

	// Inline add: title first, then description.
	adding     bool
	addStep    int
	draftTitle string
	ti         textinput.Model

	status string
	failed bool
}

func newTUIModel(store *jsonstore.Store, theme ui.Theme, logger *log.Logger, f model.Filter) (tuiModel, error) {
	l := list.New(nil, taskDelegate{theme: theme}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = theme.Title
	l.FilterInput.Prompt = "/ "
	extra := func() []key.Binding { return []key.Binding{tabKey, completeKey, addKey, reloadKey} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := tuiModel{
		store:  store,
		theme:  theme,
		log:    logger,
		filter: f,
		list:   l,
		ti:     ti,
	}
	if err := m.reload(); err != nil {
		return tuiModel{}, err
	}
	return m, nil
}

// reload queries the store with the current filter and refreshes the list.
func (m *tuiModel) reload() error {
	tasks, err := m.store.Query(m.filter)
	if err != nil {
		return err
	}
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	m.list.SetItems(items)

	all, err := m.store.Query(model.All)
	if err != nil {
		return err
	}
	d, p := model.Stats(all)
	m.list.Title = fmt.Sprintf("Tasks [%s]  %s %d  %s %d",
		m.filter, m.theme.SymOK, d, m.theme.SymNotice, p)
	return nil
}

func (m *tuiModel) setStatus(msg string, failed bool) {
	m.status, m.failed = msg, failed
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.filter = m.filter.Next()
		m.list.ResetSelected()
		if err := m.reload(); err != nil {
			m.setStatus(describe(err), true)
		} else {
			m.setStatus("showing "+m.filter.String(), false)
		}
		return m, nil
	case " ", "enter":
		m.completeSelected()
		return m, nil
	case "r":
		if err := m.reload(); err != nil {
			m.setStatus(describe(err), true)
		} else {
			m.setStatus("reloaded", false)
		}
		return m, nil
	case "a":
		m.adding = true
		m.addStep = 0
		m.ti.SetValue("")
		m.ti.Placeholder = "Title..."
		cmd := m.ti.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *tuiModel) completeSelected() {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return
	}
	id := it.task.ID
	out, err := m.store.Complete(id)
	if err != nil {
		m.setStatus(describe(err), true)
		return
	}
	m.log.Debug("complete", "id", id, "outcome", out)
	switch out {
	case jsonstore.Completed:
		m.setStatus(fmt.Sprintf("#%d done", id), false)
	case jsonstore.AlreadyComplete:
		m.setStatus(fmt.Sprintf("#%d is already done", id), false)
	case jsonstore.NotFound:
		m.setStatus(fmt.Sprintf("#%d no longer exists", id), true)
	}
	idx := m.list.Index()
	if err := m.reload(); err != nil {
		m.setStatus(describe(err), true)
		return
	}
	if n := len(m.list.Items()); idx >= n && n > 0 {
		idx = n - 1
	}
	m.list.Select(idx)
}

func (m tuiModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			m.setStatus("add cancelled", false)
			return m, nil
		case "enter":
			if m.addStep == 0 {
				title := strings.TrimSpace(m.ti.Value())
				if title == "" {
					m.setStatus("title cannot be empty", true)
					return m, nil
				}
				m.draftTitle = title
				m.addStep = 1
				m.ti.SetValue("")
				m.ti.Placeholder = "Description (optional)..."
				m.setStatus("", false)
				return m, nil
			}
			task, err := m.store.Create(m.draftTitle, m.ti.Value())
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			if err != nil {
				m.setStatus(describe(err), true)
				return m, nil
			}
			m.log.Debug("task created", "id", task.ID)
			if err := m.reload(); err != nil {
				m.setStatus(describe(err), true)
				return m, nil
			}
			m.setStatus(fmt.Sprintf("added #%d", task.ID), false)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	content := m.list.View()
	if m.adding {
		label := "New task: title"
		if m.addStep == 1 {
			label = "New task: description"
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(m.theme.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render(label+"\n"+m.ti.View())
	}
	if m.status != "" {
		style := m.theme.Muted
		if m.failed {
			style = m.theme.Error
		}
		content += "\n" + style.Render(m.status)
	}
	return m.theme.Panel([]string{content})
}
