package model

import (
	"fmt"
	"strings"
)

// Task is a single actionable item owned by exactly one Folder.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Folder is a named grouping owning an ordered list of tasks.
type Folder struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Document is the whole persisted collection. It is read and rewritten
// as one unit on every mutation.
type Document []Folder

// FlattenedTask is a task tagged with the folder it came from.
// It is a read-time projection and never persisted.
type FlattenedTask struct {
	Task
	FolderID string `json:"folderId" yaml:"folderId"`
}

// DefaultFolderNames are the folders a fresh store is seeded with.
var DefaultFolderNames = []string{"Not Important", "Important", "Not Urgent", "Urgent"}

// Seed builds the default document with freshly generated ids.
func Seed() Document {
	doc := make(Document, 0, len(DefaultFolderNames))
	for _, name := range DefaultFolderNames {
		doc = append(doc, Folder{ID: NewID(), Name: name, Tasks: []Task{}})
	}
	return doc
}

// Clone returns a deep copy; callers may mutate it freely.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, f := range d {
		out[i] = f.Clone()
	}
	return out
}

// Clone returns a copy of the folder with its own task slice.
func (f Folder) Clone() Folder {
	tasks := make([]Task, len(f.Tasks))
	copy(tasks, f.Tasks)
	f.Tasks = tasks
	return f
}

// FolderIndex returns the position of the folder with id, or -1.
func (d Document) FolderIndex(id string) int {
	for i, f := range d {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// TaskIndex returns the position of the task with id, or -1.
func (f Folder) TaskIndex(id string) int {
	for i, t := range f.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// TaskCount is the number of tasks across all folders.
func (d Document) TaskCount() int {
	n := 0
	for _, f := range d {
		n += len(f.Tasks)
	}
	return n
}

// Validate checks that folder ids and task ids are unique across the
// document and that no name is blank.
func (d Document) Validate() error {
	folders := make(map[string]struct{}, len(d))
	tasks := make(map[string]string)
	for i, f := range d {
		if f.ID == "" {
			return fmt.Errorf("folder[%d]: empty id", i)
		}
		if _, dup := folders[f.ID]; dup {
			return fmt.Errorf("folder[%d]: duplicate id %q", i, f.ID)
		}
		folders[f.ID] = struct{}{}
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("folder %q: empty name", f.ID)
		}
		for j, t := range f.Tasks {
			if t.ID == "" {
				return fmt.Errorf("folder %q task[%d]: empty id", f.ID, j)
			}
			if owner, dup := tasks[t.ID]; dup {
				return fmt.Errorf("task %q: appears in folder %q and folder %q", t.ID, owner, f.ID)
			}
			tasks[t.ID] = f.ID
			if strings.TrimSpace(t.Name) == "" {
				return fmt.Errorf("task %q: empty name", t.ID)
			}
		}
	}
	return nil
}
