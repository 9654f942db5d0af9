package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/clarolist/internal/model"
	"github.com/idilsaglam/clarolist/internal/repo"
	"github.com/idilsaglam/clarolist/internal/store/jsonstore"
)

func TestProjectOrderAndTags(t *testing.T) {
	doc := model.Document{
		{ID: "f1", Name: "A", Tasks: []model.Task{{ID: "t1", Name: "one"}}},
		{ID: "f2", Name: "B", Tasks: []model.Task{{ID: "t2", Name: "two"}, {ID: "t3", Name: "three", Completed: true}}},
	}
	got := Project(doc)
	require.Len(t, got, 3)

	want := []struct{ id, folder string }{{"t1", "f1"}, {"t2", "f2"}, {"t3", "f2"}}
	for i, w := range want {
		assert.Equal(t, w.id, got[i].ID)
		assert.Equal(t, w.folder, got[i].FolderID)
	}
	assert.True(t, got[2].Completed)

	got[0].Name = "changed"
	assert.Equal(t, "one", doc[0].Tasks[0].Name)
	assert.Equal(t, "one", Project(doc)[0].Name)
}

func TestProjectEmpty(t *testing.T) {
	assert.Empty(t, Project(nil))
	assert.Empty(t, Project(model.Document{{ID: "f", Name: "x"}}))
}

func TestStatsAndSplit(t *testing.T) {
	flat := []model.FlattenedTask{
		{Task: model.Task{ID: "a", Completed: true}},
		{Task: model.Task{ID: "b"}},
		{Task: model.Task{ID: "c"}},
	}
	done, pending := Stats(flat)
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)

	p, d := Split(flat)
	require.Len(t, p, 2)
	require.Len(t, d, 1)
	assert.Equal(t, "b", p[0].ID)
	assert.Equal(t, "a", d[0].ID)
}

func setup(t *testing.T) (*jsonstore.Store, *repo.Folders, *repo.Tasks) {
	t.Helper()
	st := jsonstore.New(jsonstore.NewFileBackend(filepath.Join(t.TempDir(), jsonstore.DataFileName)))
	return st, repo.NewFolders(st), repo.NewTasks(st)
}

func TestAllTasksRoutesWritesByFolder(t *testing.T) {
	st, folders, tasks := setup(t)
	ctx := context.Background()

	doc := folders.Load(ctx)
	var err error
	doc, err = tasks.AddTask(ctx, doc, doc[0].ID, "first")
	require.NoError(t, err)
	doc, err = tasks.AddTask(ctx, doc, doc[2].ID, "second")
	require.NoError(t, err)

	view := NewAllTasks(st, tasks)
	assert.False(t, view.Loaded())
	items := view.Reload(ctx)
	require.True(t, view.Loaded())
	require.Len(t, items, 2)
	assert.Equal(t, doc[2].ID, items[1].FolderID)

	items, err = view.Toggle(ctx, items[1])
	require.NoError(t, err)
	assert.True(t, items[1].Completed)
	persisted := st.Load(ctx)
	assert.True(t, persisted[2].Tasks[0].Completed)

	items, err = view.Delete(ctx, items[0])
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "second", items[0].Name)
	assert.Empty(t, st.Load(ctx)[0].Tasks)
}

func TestAllTasksStaleEntry(t *testing.T) {
	st, folders, tasks := setup(t)
	ctx := context.Background()

	doc := folders.Load(ctx)
	doc, err := tasks.AddTask(ctx, doc, doc[0].ID, "x")
	require.NoError(t, err)

	view := NewAllTasks(st, tasks)
	items := view.Reload(ctx)
	require.Len(t, items, 1)

	// Another view deletes the folder; this view has not reloaded.
	fid := doc[0].ID
	_, err = folders.Delete(ctx, doc, fid)
	require.NoError(t, err)

	got, err := view.Toggle(ctx, items[0])
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Empty(t, got, "the re-read drops the stale entry")
	_, ok := repo.FindByID(st.Load(ctx), fid)
	assert.False(t, ok, "the delete is not overwritten")

	_, err = view.Delete(ctx, items[0])
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAllTasksWriteKeepsOtherViewsChanges(t *testing.T) {
	st, folders, tasks := setup(t)
	ctx := context.Background()

	doc := folders.Load(ctx)
	doc, err := tasks.AddTask(ctx, doc, doc[0].ID, "x")
	require.NoError(t, err)

	view := NewAllTasks(st, tasks)
	items := view.Reload(ctx)

	// The editor adds a folder after the view loaded.
	_, err = folders.CreateOrRename(ctx, doc, "", "Errands")
	require.NoError(t, err)

	_, err = view.Toggle(ctx, items[0])
	require.NoError(t, err)

	stored := st.Load(ctx)
	require.Len(t, stored, 5)
	assert.Equal(t, "Errands", stored[4].Name)
	assert.True(t, stored[0].Tasks[0].Completed)
}
