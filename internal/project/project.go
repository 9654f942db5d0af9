// Package project derives the flattened all-tasks view of a document.
package project

import (
	"context"

	"github.com/idilsaglam/clarolist/internal/model"
	"github.com/idilsaglam/clarolist/internal/repo"
)

// Project flattens every folder's tasks in folder order, then task order,
// tagging each with its folder id. The result is freshly allocated.
func Project(doc model.Document) []model.FlattenedTask {
	out := make([]model.FlattenedTask, 0, doc.TaskCount())
	for _, f := range doc {
		for _, t := range f.Tasks {
			out = append(out, model.FlattenedTask{Task: t, FolderID: f.ID})
		}
	}
	return out
}

// Stats counts completed and pending tasks.
func Stats(tasks []model.FlattenedTask) (done, pending int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Split separates pending from completed tasks, keeping order.
func Split(tasks []model.FlattenedTask) (pending, done []model.FlattenedTask) {
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}
	return
}

// AllTasks is the flattened view. It keeps its own cached document for
// display, refreshed by Reload. Writes re-read the stored document first
// and route through the task repository using each entry's folder id.
type AllTasks struct {
	store repo.Persister
	tasks *repo.Tasks

	doc   model.Document
	items []model.FlattenedTask
}

// NewAllTasks returns an unloaded view.
func NewAllTasks(store repo.Persister, tasks *repo.Tasks) *AllTasks {
	return &AllTasks{store: store, tasks: tasks}
}

// Reload re-reads the document and re-projects it.
func (v *AllTasks) Reload(ctx context.Context) []model.FlattenedTask {
	v.set(v.store.Load(ctx))
	return v.items
}

// Items returns the last projection.
func (v *AllTasks) Items() []model.FlattenedTask { return v.items }

// Document returns the cached document the projection was built from.
func (v *AllTasks) Document() model.Document { return v.doc }

// Loaded reports whether Reload has run.
func (v *AllTasks) Loaded() bool { return v.doc != nil }

// Toggle flips completion of a projected task.
func (v *AllTasks) Toggle(ctx context.Context, t model.FlattenedTask) ([]model.FlattenedTask, error) {
	return v.write(ctx, func(doc model.Document) (model.Document, error) {
		return v.tasks.ToggleCompleted(ctx, doc, t.ID, t.FolderID)
	})
}

// Delete removes a projected task from its folder.
func (v *AllTasks) Delete(ctx context.Context, t model.FlattenedTask) ([]model.FlattenedTask, error) {
	return v.write(ctx, func(doc model.Document) (model.Document, error) {
		return v.tasks.DeleteTask(ctx, doc, t.ID, t.FolderID)
	})
}

// write applies op to the freshly loaded document. On error the view
// still shows the fresh document, which drops entries that went stale.
func (v *AllTasks) write(ctx context.Context, op func(model.Document) (model.Document, error)) ([]model.FlattenedTask, error) {
	v.set(v.store.Load(ctx))
	doc, err := op(v.doc)
	if err != nil {
		return v.items, err
	}
	v.set(doc)
	return v.items, nil
}

func (v *AllTasks) set(doc model.Document) {
	v.doc = doc
	v.items = Project(doc)
}
