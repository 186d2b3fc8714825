package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acampagne/todo/internal/model"
	"github.com/acampagne/todo/internal/store/jsonstore"
	"github.com/acampagne/todo/internal/ui"
)

// listItem adapts a model.Item to bubbles/list.Item.
type listItem struct {
	item model.Item
}

func (i listItem) label() string {
	box := ui.Current().BoxUnchecked
	if i.item.Completed {
		box = ui.Current().BoxChecked
	}
	return fmt.Sprintf("#%d %s %s", i.item.ID, box, i.item.Title)
}

func (i listItem) Title() string       { return i.label() }
func (i listItem) Description() string { return i.item.Description }
func (i listItem) FilterValue() string { return i.item.Title }

type modelTUI struct {
	list    list.Model
	store   *jsonstore.Store
	changed bool
	nextID  int // ids handed out during the session; deleted ids are not reissued

	// Inline add
	adding bool
	ti     textinput.Model // shared text input model (used for add & edit)
	addErr string

	// Inline edit
	editing   bool
	editIndex int
	editErr   string

	// Undo support (single-level)
	canUndo   bool
	undoIndex int
	undoItem  *listItem
}

// itemDelegate renders each item on a single line, with the description
// appended muted when present.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	id := mutedStyle.Render(fmt.Sprintf("#%-3d", it.item.ID))
	box := mutedStyle.Render(ui.Current().BoxUnchecked)
	text := it.item.Title
	if it.item.Completed {
		box = successStyle.Render(ui.Current().BoxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", id, box, text)
	if it.item.Description != "" {
		line += mutedStyle.Render("  " + it.item.Description)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// runInteractiveList starts the Bubble Tea list and rewrites the store
// on quit when anything changed.
func runInteractiveList(store *jsonstore.Store, items []model.Item) error {
	li := make([]list.Item, 0, len(items))
	nextID := 1
	for _, it := range items {
		li = append(li, listItem{item: it})
		if it.ID >= nextID {
			nextID = it.ID + 1
		}
	}

	l := list.New(li, itemDelegate{}, 0, 0)

	// Header title with live counts
	var dn, pn int
	for _, it := range items {
		if it.Completed {
			dn++
		} else {
			pn++
		}
	}
	l.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render(ui.Current().SymDone), dn,
		pendingStyle.Render(ui.Current().SymPending), pn,
		accentStyle.Render("Total"), len(items),
	)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	// Extend help with Add / Edit / Undo bindings
	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, undoBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, undoBind} }

	m := modelTUI{
		list:   l,
		store:  store,
		nextID: nextID,
	}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "New item title..."
	m.ti.CharLimit = 200

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, okModel := finalModel.(modelTUI)
	if !okModel {
		return nil
	}

	if fm.changed {
		out := make([]model.Item, 0, len(fm.list.Items()))
		for _, it := range fm.list.Items() {
			if li, ok := it.(listItem); ok {
				out = append(out, li.item)
			}
		}
		if err := fm.store.Rewrite(out); err != nil {
			return err
		}
		ui.OK("saved")
	}
	return nil
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// add mode
	if m.adding {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				title := strings.TrimSpace(m.ti.Value())
				if title == "" {
					m.addErr = "Title cannot be empty"
					return m, nil
				}
				item, err := model.New(title, "")
				if err != nil {
					m.addErr = err.Error()
					return m, nil
				}
				item.ID = m.nextID
				m.nextID++
				m.list.InsertItem(m.list.Index()+1, listItem{item: item})
				m.changed = true
				m.addErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				m.adding = false
				return m, nil
			case "esc":
				m.adding = false
				m.addErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// edit mode
	if m.editing {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				title := strings.TrimSpace(m.ti.Value())
				if title == "" {
					m.editErr = "Title cannot be empty"
					return m, nil
				}
				if m.editIndex >= 0 && m.editIndex < len(m.list.Items()) {
					if li, ok := m.list.Items()[m.editIndex].(listItem); ok {
						li.item.Title = title
						m.list.SetItem(m.editIndex, li)
						m.changed = true
					}
				}
				m.editErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				m.editing = false
				return m, nil
			case "esc":
				m.editing = false
				m.editErr = ""
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			i := m.list.Index()
			if i >= 0 && i < len(m.list.Items()) {
				if li, ok := m.list.Items()[i].(listItem); ok {
					if li.item.Completed {
						li.item = li.item.Uncomplete()
					} else {
						li.item = li.item.Complete(time.Now())
					}
					m.list.SetItem(i, li)
					m.changed = true
				}
			}
			return m, nil
		case "d":
			i := m.list.Index()
			if i >= 0 && i < len(m.list.Items()) {
				if li, ok := m.list.Items()[i].(listItem); ok {
					tmp := li
					m.undoItem = &tmp
					m.undoIndex = i
					m.canUndo = true
				}
				m.list.RemoveItem(i)
				m.changed = true
			}
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			m.ti.Focus()
			return m, nil
		case "e":
			i := m.list.Index()
			if i >= 0 && i < len(m.list.Items()) {
				if li, ok := m.list.Items()[i].(listItem); ok {
					m.editing = true
					m.editIndex = i
					m.ti.SetValue(li.item.Title)
					m.ti.CursorEnd()
					m.ti.Placeholder = "Edit item title..."
					m.ti.Focus()
					return m, nil
				}
			}
			return m, nil
		case "u":
			if m.canUndo && m.undoItem != nil {
				idx := m.undoIndex
				if idx < 0 {
					idx = 0
				}
				if idx > len(m.list.Items()) {
					idx = len(m.list.Items())
				}
				m.list.InsertItem(idx, *m.undoItem)
				m.changed = true
				m.canUndo = false
				m.undoItem = nil
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	w, h := widthHeight()
	listHeight := h - 4
	if m.adding || m.editing {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	if m.adding || m.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.addErr != "" && m.adding {
			title += " — " + errorStyle.Render(m.addErr)
		}
		if m.editErr != "" && m.editing {
			title += " — " + errorStyle.Render(m.editErr)
		}
		content = content + "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return panelString(content)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := termSize(); err == nil {
		w, h = tw, th
	}
	return w, h
}

// portable terminal size
func termSize() (int, int, error) {
	fd := int(os.Stdout.Fd())
	type winsize struct {
		Row, Col, Xpixel, Ypixel uint16
	}
	ws := &winsize{}
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL,
		uintptr(fd), uintptr(syscall.TIOCGWINSZ), uintptr(unsafe.Pointer(ws)))
	if errno != 0 {
		return 0, 0, fmt.Errorf("ioctl: %v", errno)
	}
	return int(ws.Col), int(ws.Row), nil
}
