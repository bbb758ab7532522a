// Package history records which branches were switched to in each
// repository, so gw can offer recent branches first and jump back to the
// previous one with "gw branch switch -".
package history

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/storage"
)

// maxEntries caps the file size; the least recently used entries go first.
const maxEntries = 200

// Entry is one branch of one repository.
type Entry struct {
	Repo        string    `json:"repo"`
	Branch      string    `json:"branch"`
	AccessCount int       `json:"access_count"`
	LastAccess  time.Time `json:"last_access"`
}

// History is the on-disk list of entries.
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns history.json next to the config file.
func DefaultPath() string {
	cfgPath, err := config.Path()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gw", "history.json")
	}
	return filepath.Join(filepath.Dir(cfgPath), "history.json")
}

// Load reads the history at path. A missing file yields an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, err
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

func (h *History) find(repo, branch string) int {
	return slices.IndexFunc(h.Entries, func(e Entry) bool {
		return e.Repo == repo && e.Branch == branch
	})
}

// Record bumps the entry for repo/branch, creating it if needed, and
// evicts the least recently used entry beyond maxEntries.
func (h *History) Record(repo, branch string, now time.Time) {
	if i := h.find(repo, branch); i >= 0 {
		h.Entries[i].AccessCount++
		h.Entries[i].LastAccess = now
		return
	}

	h.Entries = append(h.Entries, Entry{
		Repo:        repo,
		Branch:      branch,
		AccessCount: 1,
		LastAccess:  now,
	})

	if len(h.Entries) > maxEntries {
		oldest := 0
		for i, e := range h.Entries {
			if e.LastAccess.Before(h.Entries[oldest].LastAccess) {
				oldest = i
			}
		}
		h.Entries = slices.Delete(h.Entries, oldest, oldest+1)
	}
}

// Touch marks repo/branch as used at now without counting a switch.
func (h *History) Touch(repo, branch string, now time.Time) {
	if i := h.find(repo, branch); i >= 0 {
		h.Entries[i].LastAccess = now
		return
	}
	h.Record(repo, branch, now)
	if i := h.find(repo, branch); i >= 0 {
		h.Entries[i].AccessCount = 0
	}
}

// Rename moves the entry for from to to, merging into an existing entry
// for to. Returns false when from has no entry.
func (h *History) Rename(repo, from, to string) bool {
	i := h.find(repo, from)
	if i < 0 {
		return false
	}
	if j := h.find(repo, to); j >= 0 {
		h.Entries[j].AccessCount += h.Entries[i].AccessCount
		if h.Entries[i].LastAccess.After(h.Entries[j].LastAccess) {
			h.Entries[j].LastAccess = h.Entries[i].LastAccess
		}
		h.Entries = slices.Delete(h.Entries, i, i+1)
		return true
	}
	h.Entries[i].Branch = to
	return true
}

// Remove drops the entry for repo/branch.
func (h *History) Remove(repo, branch string) bool {
	i := h.find(repo, branch)
	if i < 0 {
		return false
	}
	h.Entries = slices.Delete(h.Entries, i, i+1)
	return true
}

// ForRepo returns the entries of repo, most recently used first.
func (h *History) ForRepo(repo string) []Entry {
	var out []Entry
	for _, e := range h.Entries {
		if e.Repo == repo {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.LastAccess.Compare(a.LastAccess)
	})
	return out
}

// Previous returns the most recently used branch of repo other than
// current.
func (h *History) Previous(repo, current string) (string, bool) {
	for _, e := range h.ForRepo(repo) {
		if e.Branch != current {
			return e.Branch, true
		}
	}
	return "", false
}

// RecordAccess records a switch to branch under the file lock of path.
func RecordAccess(repo, branch, path string) error {
	var h History
	return storage.Update(path, &h, func() error {
		h.Record(repo, branch, time.Now())
		return nil
	})
}

// RecordSwitch records leaving from for to under the file lock of path.
// from is kept just behind to so that Previous returns it. An empty from
// records only to.
func RecordSwitch(repo, from, to, path string) error {
	var h History
	return storage.Update(path, &h, func() error {
		now := time.Now()
		if from != "" && from != to {
			h.Touch(repo, from, now.Add(-time.Millisecond))
		}
		h.Record(repo, to, now)
		return nil
	})
}

// RecordRename applies Rename to the history at path under its file lock.
func RecordRename(repo, from, to, path string) error {
	var h History
	return storage.Update(path, &h, func() error {
		h.Rename(repo, from, to)
		return nil
	})
}
