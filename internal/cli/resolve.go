package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/clarolist/internal/model"
	"github.com/idilsaglam/clarolist/internal/repo"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolveFolder accepts a 1-based position, a full id or a unique id prefix.
func resolveFolder(doc model.Document, ref string) (model.Folder, error) {
	ids := make([]string, len(doc))
	for i, f := range doc {
		ids[i] = f.ID
	}
	i, err := resolveRef(ids, ref)
	if err != nil {
		return model.Folder{}, fmt.Errorf("folder %q: %w", ref, err)
	}
	return doc[i], nil
}

// resolveTask resolves ref within a single folder's tasks.
func resolveTask(f model.Folder, ref string) (model.Task, error) {
	ids := make([]string, len(f.Tasks))
	for i, t := range f.Tasks {
		ids[i] = t.ID
	}
	i, err := resolveRef(ids, ref)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %q in %q: %w", ref, f.Name, err)
	}
	return f.Tasks[i], nil
}

func resolveRef(ids []string, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, repo.ErrNotFound
	}
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
	}
	n, numErr := strconv.Atoi(ref)
	if numErr == nil && n >= 1 && n <= len(ids) {
		return n - 1, nil
	}
	match := -1
	for i, id := range ids {
		if strings.HasPrefix(id, ref) {
			if match >= 0 {
				return -1, usagef("ambiguous id prefix %q", ref)
			}
			match = i
		}
	}
	if match >= 0 {
		return match, nil
	}
	if numErr == nil {
		return -1, fmt.Errorf("index out of range: have %d: %w", len(ids), repo.ErrNotFound)
	}
	return -1, repo.ErrNotFound
}
