package repo

import (
	"context"
	"strings"

	"github.com/idilsaglam/clarolist/internal/model"
)

// Tasks is the task repository. Tasks are addressed by their own id and
// the id of the folder that owns them.
type Tasks struct {
	store Persister
}

// NewTasks returns a task repository persisting through store.
func NewTasks(store Persister) *Tasks {
	return &Tasks{store: store}
}

// AddTask appends an uncompleted task to the folder.
func (r *Tasks) AddTask(ctx context.Context, doc model.Document, folderID, name string) (model.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return doc, &ValidationError{Field: "task name", Msg: "please enter a task name"}
	}
	i := doc.FolderIndex(folderID)
	if i < 0 {
		return doc, &ValidationError{Field: "folder", Msg: "no folder with id " + folderID}
	}
	next := doc.Clone()
	next[i].Tasks = append(next[i].Tasks, model.Task{ID: model.NewID(), Name: name})
	r.store.Save(ctx, next)
	return next, nil
}

// ToggleCompleted flips the task's completed flag.
func (r *Tasks) ToggleCompleted(ctx context.Context, doc model.Document, taskID, folderID string) (model.Document, error) {
	return r.update(ctx, doc, taskID, folderID, func(t *model.Task) {
		t.Completed = !t.Completed
	})
}

// RenameTask changes the task's name.
func (r *Tasks) RenameTask(ctx context.Context, doc model.Document, taskID, folderID, name string) (model.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return doc, &ValidationError{Field: "task name", Msg: "please enter a task name"}
	}
	return r.update(ctx, doc, taskID, folderID, func(t *model.Task) {
		t.Name = name
	})
}

// DeleteTask removes the task from its folder.
func (r *Tasks) DeleteTask(ctx context.Context, doc model.Document, taskID, folderID string) (model.Document, error) {
	fi, ti, err := locate(doc, taskID, folderID)
	if err != nil {
		return doc, err
	}
	next := doc.Clone()
	tasks := next[fi].Tasks
	next[fi].Tasks = append(tasks[:ti], tasks[ti+1:]...)
	r.store.Save(ctx, next)
	return next, nil
}

func (r *Tasks) update(ctx context.Context, doc model.Document, taskID, folderID string, fn func(*model.Task)) (model.Document, error) {
	fi, ti, err := locate(doc, taskID, folderID)
	if err != nil {
		return doc, err
	}
	next := doc.Clone()
	fn(&next[fi].Tasks[ti])
	r.store.Save(ctx, next)
	return next, nil
}

func locate(doc model.Document, taskID, folderID string) (folder, task int, err error) {
	folder = doc.FolderIndex(folderID)
	if folder < 0 {
		return -1, -1, notFound("folder", folderID)
	}
	task = doc[folder].TaskIndex(taskID)
	if task < 0 {
		return -1, -1, notFound("task", taskID)
	}
	return folder, task, nil
}
