package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/clarolist/internal/model"
)

// folderItem adapts a Folder to bubbles/list.Item.
type folderItem struct {
	folder model.Folder
	index  int
}

func (i folderItem) Title() string       { return i.folder.Name }
func (i folderItem) Description() string { return "" }
func (i folderItem) FilterValue() string { return i.folder.Name }

// taskItem adapts a Task, optionally tagged with its folder, to list.Item.
type taskItem struct {
	task       model.Task
	folderID   string
	folderName string
}

func (i taskItem) Title() string       { return i.task.Name }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Name }

func (i taskItem) flattened() model.FlattenedTask {
	return model.FlattenedTask{Task: i.task, FolderID: i.folderID}
}

// itemDelegate renders every row on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	var line string
	switch it := item.(type) {
	case folderItem:
		done := 0
		for _, t := range it.folder.Tasks {
			if t.Completed {
				done++
			}
		}
		line = fmt.Sprintf("%s %s",
			folderStyle(it.index).Render("▸ "+it.folder.Name),
			mutedStyle.Render(fmt.Sprintf("%d/%d", done, len(it.folder.Tasks))))
	case taskItem:
		box, text := mutedStyle.Render(boxUnchecked), it.task.Name
		if it.task.Completed {
			box, text = successStyle.Render(boxChecked), doneStyle.Render(text)
		}
		line = box + " " + text
		if it.folderName != "" {
			line += " " + mutedStyle.Render("· "+it.folderName)
		}
	default:
		return
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprint(w, prefix+strings.TrimRight(line, " "))
}

func folderItems(doc model.Document) []list.Item {
	out := make([]list.Item, 0, len(doc))
	for i, f := range doc {
		out = append(out, folderItem{folder: f, index: i})
	}
	return out
}

func taskItems(f model.Folder) []list.Item {
	out := make([]list.Item, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		out = append(out, taskItem{task: t, folderID: f.ID})
	}
	return out
}

func flattenedItems(tasks []model.FlattenedTask, doc model.Document) []list.Item {
	names := make(map[string]string, len(doc))
	for _, f := range doc {
		names[f.ID] = f.Name
	}
	out := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskItem{task: t.Task, folderID: t.FolderID, folderName: names[t.FolderID]})
	}
	return out
}
