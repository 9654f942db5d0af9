// Package tui is the interactive front end: a folder/task editor and a
// flattened all-tasks view, each holding its own copy of the document.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/clarolist/internal/model"
	"github.com/idilsaglam/clarolist/internal/project"
	"github.com/idilsaglam/clarolist/internal/repo"
	"github.com/idilsaglam/clarolist/internal/store/jsonstore"
)

// Subscriber delivers documents as they are saved, tagged with the
// store's revision counter.
type Subscriber interface {
	Subscribe() (<-chan jsonstore.Update, func())
	Revision() uint64
}

// Deps are the services the views drive.
type Deps struct {
	Store    Subscriber
	Folders  *repo.Folders
	Tasks    *repo.Tasks
	AllTasks *project.AllTasks
}

type screen int

const (
	screenFolders screen = iota
	screenTasks
	screenAll
)

type inputKind int

const (
	inputNone inputKind = iota
	inputAddFolder
	inputRenameFolder
	inputAddTask
	inputRenameTask
)

// savedMsg carries a document some view just saved.
type savedMsg jsonstore.Update

// Model is the bubbletea model for both views.
type Model struct {
	ctx  context.Context
	deps Deps

	// editor view cache; rev is the newest save it has adopted or made
	doc      model.Document
	rev      uint64
	screen   screen
	folderID string

	folders list.Model
	tasks   list.Model
	all     list.Model

	input  inputKind
	editID string
	ti     textinput.Model

	status    string
	statusErr bool

	updates <-chan jsonstore.Update
	width   int
	height  int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	openBind   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	backBind   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	tabBind    = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "all tasks"))
)

// New loads the editor's document and builds the initial folder screen.
func New(ctx context.Context, deps Deps) Model {
	m := Model{
		ctx:    ctx,
		deps:   deps,
		doc:    deps.Folders.Load(ctx),
		width:  80,
		height: 24,
	}
	m.folders = newList("Folders", "folder", "folders", addBind, editBind, deleteBind, openBind, tabBind)
	m.tasks = newList("", "task", "tasks", addBind, editBind, toggleBind, deleteBind, backBind)
	m.all = newList("All Tasks", "task", "tasks", toggleBind, deleteBind, tabBind)

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.syncRev()
	m.refresh()
	m.resize()
	return m
}

func newList(title, singular, plural string, binds ...key.Binding) list.Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = title
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName(singular, plural)
	l.AdditionalShortHelpKeys = func() []key.Binding { return binds }
	l.AdditionalFullHelpKeys = func() []key.Binding { return binds }
	// q quits from our own key handling; esc is reused for "back".
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func (m Model) Init() tea.Cmd { return waitForSave(m.updates) }

func waitForSave(ch <-chan jsonstore.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return savedMsg(u)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case savedMsg:
		// our own saves and anything older are already reflected
		if msg.Rev > m.rev {
			m.rev = msg.Rev
			m.doc = msg.Doc
			m.refresh()
		}
		return m, waitForSave(m.updates)
	case tea.KeyMsg:
		if m.input != inputNone {
			return m.updateInput(msg)
		}
		if m.current().FilterState() == list.Filtering {
			break
		}
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenFolders:
			if next, cmd, handled := m.updateFolders(msg); handled {
				return next, cmd
			}
		case screenTasks:
			if next, cmd, handled := m.updateTasks(msg); handled {
				return next, cmd
			}
		case screenAll:
			if next, cmd, handled := m.updateAll(msg); handled {
				return next, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenFolders:
		m.folders, cmd = m.folders.Update(msg)
	case screenTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case screenAll:
		m.all, cmd = m.all.Update(msg)
	}
	return m, cmd
}

func (m Model) updateFolders(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab":
		return m.showAll(), nil, true
	case "a":
		return m.startInput(inputAddFolder, "", "New folder name..."), textinput.Blink, true
	case "e":
		if f, ok := m.selectedFolder(); ok {
			return m.startInput(inputRenameFolder, f.ID, f.Name), textinput.Blink, true
		}
		return m, nil, true
	case "d":
		if f, ok := m.selectedFolder(); ok {
			doc, err := m.deps.Folders.Delete(m.ctx, m.doc, f.ID)
			m = m.apply(doc, err, "deleted "+f.Name)
		}
		return m, nil, true
	case "enter":
		if f, ok := m.selectedFolder(); ok {
			m.folderID = f.ID
			m.screen = screenTasks
			m.clearStatus()
			m.refresh()
			m.tasks.Select(0)
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateTasks(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "backspace":
		m.screen = screenFolders
		m.clearStatus()
		return m, nil, true
	case "a":
		return m.startInput(inputAddTask, "", "New task name..."), textinput.Blink, true
	case "e":
		if t, ok := m.selectedTask(m.tasks); ok {
			return m.startInput(inputRenameTask, t.task.ID, t.task.Name), textinput.Blink, true
		}
		return m, nil, true
	case " ":
		if t, ok := m.selectedTask(m.tasks); ok {
			doc, err := m.deps.Tasks.ToggleCompleted(m.ctx, m.doc, t.task.ID, m.folderID)
			m = m.apply(doc, err, "")
		}
		return m, nil, true
	case "d":
		if t, ok := m.selectedTask(m.tasks); ok {
			doc, err := m.deps.Tasks.DeleteTask(m.ctx, m.doc, t.task.ID, m.folderID)
			m = m.apply(doc, err, "deleted "+t.task.Name)
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateAll(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "esc":
		m.screen = screenFolders
		m.clearStatus()
		return m, nil, true
	case " ", "d":
		t, ok := m.selectedTask(m.all)
		if !ok {
			return m, nil, true
		}
		var err error
		if msg.String() == " " {
			_, err = m.deps.AllTasks.Toggle(m.ctx, t.flattened())
		} else {
			_, err = m.deps.AllTasks.Delete(m.ctx, t.flattened())
		}
		m.clearStatus()
		if err != nil {
			m.setError(err)
		}
		// the view wrote (or re-read) the stored document; the editor follows it
		m.doc = m.deps.AllTasks.Document()
		m.syncRev()
		m.refresh()
		m.refreshAll()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.commitInput(), nil
	case "esc":
		m.input = inputNone
		m.ti.SetValue("")
		m.ti.Blur()
		m.clearStatus()
		m.resize()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) commitInput() Model {
	value := m.ti.Value()
	var (
		doc model.Document
		err error
		ok  string
	)
	switch m.input {
	case inputAddFolder:
		doc, err = m.deps.Folders.CreateOrRename(m.ctx, m.doc, "", value)
		ok = "folder added"
	case inputRenameFolder:
		doc, err = m.deps.Folders.CreateOrRename(m.ctx, m.doc, m.editID, value)
		ok = "folder renamed"
	case inputAddTask:
		doc, err = m.deps.Tasks.AddTask(m.ctx, m.doc, m.folderID, value)
		ok = "task added"
	case inputRenameTask:
		doc, err = m.deps.Tasks.RenameTask(m.ctx, m.doc, m.editID, m.folderID, value)
		ok = "task renamed"
	}
	if errors.Is(err, repo.ErrValidation) {
		// keep the input open so the user can fix it
		m.setError(err)
		return m
	}
	m.input = inputNone
	m.editID = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
	return m.apply(doc, err, ok)
}

func (m Model) startInput(kind inputKind, editID, value string) Model {
	m.input = kind
	m.editID = editID
	m.clearStatus()
	switch kind {
	case inputAddFolder, inputAddTask:
		m.ti.SetValue("")
		m.ti.Placeholder = value
	default:
		m.ti.SetValue(value)
		m.ti.CursorEnd()
	}
	m.ti.Focus()
	m.resize()
	return m
}

// apply adopts the document returned by a repository call. On error the
// previous document is kept and the error shown.
func (m Model) apply(doc model.Document, err error, ok string) Model {
	m.clearStatus()
	if err != nil {
		m.setError(err)
		if errors.Is(err, repo.ErrNotFound) {
			// the target vanished underneath us; pick up the stored state
			m.doc = m.deps.Folders.Load(m.ctx)
			m.syncRev()
			m.refresh()
		}
		return m
	}
	m.doc = doc
	m.syncRev()
	m.status = ok
	m.refresh()
	m.resize()
	return m
}

func (m Model) showAll() Model {
	m.screen = screenAll
	m.clearStatus()
	m.deps.AllTasks.Reload(m.ctx)
	m.refreshAll()
	m.all.Select(0)
	return m
}

func (m *Model) syncRev() {
	if m.deps.Store != nil {
		m.rev = m.deps.Store.Revision()
	}
}

func (m *Model) refresh() {
	m.folders.SetItems(folderItems(m.doc))
	if m.screen != screenTasks {
		return
	}
	f, ok := repo.FindByID(m.doc, m.folderID)
	if !ok {
		m.screen = screenFolders
		m.folderID = ""
		return
	}
	m.tasks.Title = f.Name
	m.tasks.SetItems(taskItems(f))
}

func (m *Model) refreshAll() {
	m.all.SetItems(flattenedItems(m.deps.AllTasks.Items(), m.deps.AllTasks.Document()))
}

func (m *Model) resize() {
	h := m.height - 4
	if m.input != inputNone {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	m.folders.SetSize(w, h)
	m.tasks.SetSize(w, h)
	m.all.SetSize(w, h)
}

func (m *Model) current() *list.Model {
	switch m.screen {
	case screenTasks:
		return &m.tasks
	case screenAll:
		return &m.all
	}
	return &m.folders
}

func (m Model) folderByID(id string) (model.Folder, bool) {
	return m.deps.Folders.FindByID(m.doc, id)
}

func (m Model) selectedFolder() (model.Folder, bool) {
	it, ok := m.folders.SelectedItem().(folderItem)
	if !ok {
		return model.Folder{}, false
	}
	return it.folder, true
}

func (m Model) selectedTask(l list.Model) (taskItem, bool) {
	it, ok := l.SelectedItem().(taskItem)
	return it, ok
}

func (m *Model) setError(err error) {
	m.statusErr = true
	var ve *repo.ValidationError
	switch {
	case errors.As(err, &ve):
		m.status = ve.Msg
	case errors.Is(err, repo.ErrNotFound):
		m.status = "that item no longer exists"
	default:
		m.status = err.Error()
	}
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	m := New(ctx, deps)
	if deps.Store != nil {
		ch, cancel := deps.Store.Subscribe()
		defer cancel()
		m.updates = ch
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
