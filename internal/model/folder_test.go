package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	doc := Seed()
	require.Len(t, doc, 4)
	for i, f := range doc {
		assert.Equal(t, DefaultFolderNames[i], f.Name)
		assert.NotNil(t, f.Tasks)
		assert.Empty(t, f.Tasks)
	}
	require.NoError(t, doc.Validate())
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	doc := Document{{ID: "f1", Name: "A", Tasks: []Task{{ID: "t1", Name: "x"}}}}
	cp := doc.Clone()
	cp[0].Name = "B"
	cp[0].Tasks[0].Completed = true

	assert.Equal(t, "A", doc[0].Name)
	assert.False(t, doc[0].Tasks[0].Completed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr string
	}{
		{name: "empty document", doc: Document{}},
		{
			name: "valid",
			doc: Document{
				{ID: "f1", Name: "A", Tasks: []Task{{ID: "t1", Name: "x"}}},
				{ID: "f2", Name: "B", Tasks: []Task{{ID: "t2", Name: "y"}}},
			},
		},
		{
			name:    "duplicate folder id",
			doc:     Document{{ID: "f1", Name: "A"}, {ID: "f1", Name: "B"}},
			wantErr: "duplicate id",
		},
		{
			name: "task id shared across folders",
			doc: Document{
				{ID: "f1", Name: "A", Tasks: []Task{{ID: "t1", Name: "x"}}},
				{ID: "f2", Name: "B", Tasks: []Task{{ID: "t1", Name: "y"}}},
			},
			wantErr: "appears in folder",
		},
		{
			name:    "blank folder name",
			doc:     Document{{ID: "f1", Name: "  "}},
			wantErr: "empty name",
		},
		{
			name:    "missing task id",
			doc:     Document{{ID: "f1", Name: "A", Tasks: []Task{{Name: "x"}}}},
			wantErr: "empty id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIndexes(t *testing.T) {
	doc := Document{
		{ID: "f1", Name: "A", Tasks: []Task{{ID: "t1", Name: "x"}, {ID: "t2", Name: "y"}}},
	}
	assert.Equal(t, 0, doc.FolderIndex("f1"))
	assert.Equal(t, -1, doc.FolderIndex("nope"))
	assert.Equal(t, 1, doc[0].TaskIndex("t2"))
	assert.Equal(t, -1, doc[0].TaskIndex("t3"))
	assert.Equal(t, 2, doc.TaskCount())
}
