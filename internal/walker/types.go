// Package walker handles directory traversal and file selection
package walker

import (
	"sync"
)

// WalkFunc receives every selected file, in traversal order. Returning an
// error stops the walk and Walk returns that error.
type WalkFunc func(relativePath string, content []byte) error

// Filter decides whether a file's content is wanted.
// *profile.Profile satisfies it.
type Filter interface {
	IsAllowed(basename, extension string) bool
}

// SkippedReason clarifies why a file/directory was not emitted.
type SkippedReason string

const (
	ReasonIgnoredRule       SkippedReason = "Ignored (Ignore Rule)"
	ReasonIgnoredGitDir     SkippedReason = "Ignored (.git Directory)"
	ReasonOutputArtifact    SkippedReason = "Skipped (Output Artifact)"
	ReasonDeniedProfile     SkippedReason = "Filtered (Not Allowed By Profile)"
	ReasonSkippedSizeLimit  SkippedReason = "Skipped (Size Limit Exceeded)"
	ReasonSkippedNotRegular SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedStatError  SkippedReason = "Skipped (Stat Error)"
	ReasonSkippedOpenError  SkippedReason = "Skipped (Directory Unreadable)"
	ReasonSkippedReadError  SkippedReason = "Skipped (Read Error)"
	ReasonSkippedCycle      SkippedReason = "Skipped (Symlink Cycle)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker collects skipped items; safe for concurrent use
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	out := make([]SkippedItem, len(st.items))
	copy(out, st.items)
	return out
}
