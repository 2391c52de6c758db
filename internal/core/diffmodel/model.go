// Package diffmodel defines the structural hunk model the engine renders.
// The model is produced at the parser boundary (see gitdiff.go) and is
// consumed read-only by every other package.
package diffmodel

import "encoding/json"

// Side identifies which version of the file a line number refers to.
type Side int

const (
	SideOld Side = iota // deletions, "-" lines
	SideNew             // additions, "+" lines
)

// String returns the persistence/display name for the side.
func (s Side) String() string {
	if s == SideOld {
		return "old"
	}
	return "new"
}

// ParseSide converts a persisted side name back to a Side.
// Unknown values default to SideNew, matching the convention that
// additions are the "current" file.
func ParseSide(s string) Side {
	if s == "old" {
		return SideOld
	}
	return SideNew
}

// MarshalJSON persists the side by name.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a persisted side name.
func (s *Side) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = ParseSide(name)
	return nil
}

// Segment is one run of lines within a hunk: either a context run
// (Context non-empty, equal line count on both sides) or a change run
// (Deleted/Added hold the literal text, either may be empty).
// Line text never carries a trailing newline.
type Segment struct {
	Context []string
	Deleted []string
	Added   []string
}

// IsContext reports whether the segment is a context run.
func (s Segment) IsContext() bool {
	return len(s.Context) > 0
}

// Hunk is a contiguous region of a diff. OldStart/NewStart are 1-based;
// segments are ordered and line counters are monotonically non-decreasing.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Segments []Segment
}

// Additions returns the total number of added lines in the hunk.
func (h Hunk) Additions() int {
	n := 0
	for _, seg := range h.Segments {
		n += len(seg.Added)
	}
	return n
}

// Deletions returns the total number of deleted lines in the hunk.
func (h Hunk) Deletions() int {
	n := 0
	for _, seg := range h.Segments {
		n += len(seg.Deleted)
	}
	return n
}

// FileDiff is the parsed diff for a single file. A nil *FileDiff means
// "no diff available": the surface renders a static fallback and all
// derived computations produce empty outputs.
type FileDiff struct {
	Path  string
	Hunks []Hunk
	Lang  string // optional language override for display
}

// Stats returns total additions and deletions across all hunks.
func (d *FileDiff) Stats() (additions, deletions int) {
	if d == nil {
		return 0, 0
	}
	for _, h := range d.Hunks {
		additions += h.Additions()
		deletions += h.Deletions()
	}
	return additions, deletions
}
