package repo

import (
	"context"
	"strings"

	"github.com/idilsaglam/clarolist/internal/model"
)

// Folders is the folder repository.
type Folders struct {
	store Persister
}

// NewFolders returns a folder repository persisting through store.
func NewFolders(store Persister) *Folders {
	return &Folders{store: store}
}

// Load returns the current persisted document.
func (r *Folders) Load(ctx context.Context) model.Document {
	return r.store.Load(ctx)
}

// CreateOrRename renames the folder existingID when it exists, otherwise
// appends a new empty folder.
func (r *Folders) CreateOrRename(ctx context.Context, doc model.Document, existingID, name string) (model.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return doc, &ValidationError{Field: "folder name", Msg: "please enter a folder name"}
	}
	next := doc.Clone()
	if existingID != "" {
		if i := next.FolderIndex(existingID); i >= 0 {
			next[i].Name = name
			r.store.Save(ctx, next)
			return next, nil
		}
	}
	next = append(next, model.Folder{ID: model.NewID(), Name: name, Tasks: []model.Task{}})
	r.store.Save(ctx, next)
	return next, nil
}

// Delete removes the folder and every task it owns.
func (r *Folders) Delete(ctx context.Context, doc model.Document, folderID string) (model.Document, error) {
	i := doc.FolderIndex(folderID)
	if i < 0 {
		return doc, notFound("folder", folderID)
	}
	next := make(model.Document, 0, len(doc)-1)
	for _, f := range doc {
		if f.ID != folderID {
			next = append(next, f.Clone())
		}
	}
	r.store.Save(ctx, next)
	return next, nil
}

// FindByID looks a folder up by id.
func FindByID(doc model.Document, folderID string) (model.Folder, bool) {
	i := doc.FolderIndex(folderID)
	if i < 0 {
		return model.Folder{}, false
	}
	return doc[i], true
}

// FindByID is the method form of the package-level FindByID.
func (r *Folders) FindByID(doc model.Document, folderID string) (model.Folder, bool) {
	return FindByID(doc, folderID)
}
