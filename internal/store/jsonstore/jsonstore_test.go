package jsonstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/clarolist/internal/model"
)

func newFileStore(t *testing.T) (*Store, string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", DataFileName)
	buf := &bytes.Buffer{}
	logger := log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	return New(NewFileBackend(path), WithLogger(logger)), path, buf
}

func sampleDoc() model.Document {
	return model.Document{
		{ID: "f1", Name: "Home", Tasks: []model.Task{
			{ID: "t1", Name: "Dishes", Completed: true},
			{ID: "t2", Name: "Laundry"},
		}},
		{ID: "f2", Name: "Work", Tasks: []model.Task{}},
	}
}

func TestRoundTrip(t *testing.T) {
	st, _, _ := newFileStore(t)
	ctx := context.Background()

	doc := sampleDoc()
	require.NoError(t, st.SaveStrict(ctx, doc))

	got := st.Load(ctx)
	assert.Equal(t, doc, got)
}

func TestLoadSeedsMissingDocument(t *testing.T) {
	st, path, logs := newFileStore(t)
	ctx := context.Background()

	first := st.Load(ctx)
	require.Len(t, first, 4)
	for i, f := range first {
		assert.Equal(t, model.DefaultFolderNames[i], f.Name)
		assert.Empty(t, f.Tasks)
	}
	_, err := os.Stat(path)
	require.NoError(t, err, "seed must be written through")
	assert.Contains(t, logs.String(), "seeding defaults")

	second := st.Load(ctx)
	assert.Equal(t, first, second)
}

func TestLoadSeedsCorruptDocument(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not json", blob: "{{{"},
		{name: "empty", blob: "   "},
		{name: "object instead of array", blob: `{"id":"f1"}`},
		{name: "missing tasks", blob: `[{"id":"f1","name":"A"}]`},
		{name: "completed wrong type", blob: `[{"id":"f1","name":"A","tasks":[{"id":"t1","name":"x","completed":"yes"}]}]`},
		{name: "duplicate task id", blob: `[{"id":"f1","name":"A","tasks":[{"id":"t1","name":"x","completed":false}]},{"id":"f2","name":"B","tasks":[{"id":"t1","name":"y","completed":false}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, path, _ := newFileStore(t)
			ctx := context.Background()
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(tt.blob), 0o644))

			_, err := st.LoadStrict(ctx)
			require.ErrorIs(t, err, ErrCorrupt)

			first := st.Load(ctx)
			require.Len(t, first, 4)
			second := st.Load(ctx)
			assert.Equal(t, first, second)
		})
	}
}

func TestLoadStrictDistinguishesAbsent(t *testing.T) {
	st, _, _ := newFileStore(t)
	_, err := st.LoadStrict(context.Background())
	require.ErrorIs(t, err, ErrNotExist)
	assert.False(t, errors.Is(err, ErrCorrupt))
}

type failingBackend struct{ reads int }

func (f *failingBackend) Read(context.Context) ([]byte, error) {
	f.reads++
	return nil, ErrNotExist
}
func (f *failingBackend) Write(context.Context, []byte) error { return errors.New("disk full") }
func (f *failingBackend) Location() string                    { return "nowhere" }

func TestSaveFailureIsLoggedNotReturned(t *testing.T) {
	buf := &bytes.Buffer{}
	st := New(&failingBackend{}, WithLogger(log.New(buf)))
	ctx := context.Background()

	doc := st.Load(ctx)
	assert.Len(t, doc, 4, "seed is still returned when write-through fails")

	st.Save(ctx, sampleDoc())
	assert.Contains(t, buf.String(), "document write failed")
	assert.Contains(t, buf.String(), "disk full")

	assert.Error(t, st.SaveStrict(ctx, sampleDoc()))
}

func TestSaveOverwritesWithoutMerge(t *testing.T) {
	st, _, _ := newFileStore(t)
	ctx := context.Background()

	st.Save(ctx, sampleDoc())
	st.Save(ctx, model.Document{{ID: "only", Name: "Only", Tasks: []model.Task{}}})

	got := st.Load(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].ID)
}

func TestSubscribe(t *testing.T) {
	st, _, _ := newFileStore(t)
	ctx := context.Background()

	ch, cancel := st.Subscribe()
	doc := sampleDoc()
	st.Save(ctx, doc)

	got := <-ch
	assert.Equal(t, doc, got.Doc)
	assert.Equal(t, uint64(1), got.Rev)
	assert.Equal(t, uint64(1), st.Revision())

	cancel()
	cancel()
	for range ch {
	}
}

func TestSubscribeKeepsNewestUpdate(t *testing.T) {
	st, _, _ := newFileStore(t)
	ctx := context.Background()

	ch, cancel := st.Subscribe()
	defer cancel()

	older := sampleDoc()
	newer := append(sampleDoc(), model.Folder{ID: "f3", Name: "Later", Tasks: []model.Task{}})
	// Neither save blocks while nobody reads.
	st.Save(ctx, older)
	st.Save(ctx, newer)

	got := <-ch
	assert.Equal(t, uint64(2), got.Rev)
	assert.Equal(t, newer, got.Doc)
	select {
	case u := <-ch:
		t.Fatalf("unexpected queued update rev %d", u.Rev)
	default:
	}
}

// flakyBackend fails the next n reads with a non-classified error.
type flakyBackend struct {
	*FileBackend
	fail int
}

func (f *flakyBackend) Read(ctx context.Context) ([]byte, error) {
	if f.fail > 0 {
		f.fail--
		return nil, errors.New("read tcp: i/o timeout")
	}
	return f.FileBackend.Read(ctx)
}

func TestLoadReadErrorKeepsStoredDocument(t *testing.T) {
	backend := &flakyBackend{FileBackend: NewFileBackend(filepath.Join(t.TempDir(), DataFileName))}
	buf := &bytes.Buffer{}
	st := New(backend, WithLogger(log.New(buf)))
	ctx := context.Background()

	doc := st.Load(ctx)
	doc[0].Name = "Mine"
	require.NoError(t, st.SaveStrict(ctx, doc))

	backend.fail = 1
	fallback := st.Load(ctx)
	require.Len(t, fallback, 4)
	assert.Equal(t, "Not Important", fallback[0].Name)
	assert.Contains(t, buf.String(), "i/o timeout")

	got := st.Load(ctx)
	assert.Equal(t, "Mine", got[0].Name)
	assert.Equal(t, doc, got)
}

func TestLoadKeepsCorruptBlob(t *testing.T) {
	st, path, buf := newFileStore(t)
	ctx := context.Background()
	blob := `[{"id":"f1","name":"  ","tasks":[]}]`
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	doc := st.Load(ctx)
	require.Len(t, doc, 4)

	kept, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, blob, string(kept))
	assert.Contains(t, buf.String(), "corrupt document kept")
}

func TestEncodeNilTasks(t *testing.T) {
	b, err := Encode(model.Document{{ID: "f1", Name: "A"}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tasks": []`)

	b, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
