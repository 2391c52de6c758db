// Package comments owns the diff comment model and its persistence
// adapter. One adapter instance serves one file-diff instance.
package comments

import (
	"fmt"
	"time"

	"github.com/colonyops/diffview/internal/core/diffmodel"
	"github.com/colonyops/diffview/pkg/randid"
)

// Status marks a comment's review state. Only Text and Status may change
// after creation.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// DiffComment is one line-range annotation. StartLine/EndLine are
// coordinates on Side and the range is immutable after creation: editing
// never changes which lines a comment anchors to.
type DiffComment struct {
	ID          string         `json:"id"`
	FilePath    string         `json:"filePath"`
	StartLine   int            `json:"startLine"`
	EndLine     int            `json:"endLine"`
	Side        diffmodel.Side `json:"side"`
	CodeContent string         `json:"codeContent,omitempty"`
	Text        string         `json:"text"`
	CreatedAt   time.Time      `json:"createdAt"`
	Status      Status         `json:"status"`
}

const idSuffixLen = 6

// NewID builds a comment identity unique within a session: file path,
// creation instant, and a random suffix guarding against rapid successive
// creation in the same millisecond.
func NewID(filePath string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", filePath, now.UnixMilli(), randid.Generate(idSuffixLen))
}

// NewComment constructs a comment for the given range. Reversed bounds
// are normalized once here; the range never changes afterwards.
func NewComment(filePath string, side diffmodel.Side, startLine, endLine int, codeContent, text string) DiffComment {
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	now := time.Now()
	return DiffComment{
		ID:          NewID(filePath, now),
		FilePath:    filePath,
		StartLine:   startLine,
		EndLine:     endLine,
		Side:        side,
		CodeContent: codeContent,
		Text:        text,
		CreatedAt:   now,
		Status:      StatusOpen,
	}
}
