package diffview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colonyops/diffview/internal/core/comments"
)

// GenerateFeedback renders a file's comments as plain-text review
// feedback for clipboard or stdout handoff.
//
// Format:
//
//	File: <path>
//	Comments: <count>
//
//	Lines <start>-<end> (<side>):
//	> <code line 1>
//	> <code line 2>
//	<comment text>
func GenerateFeedback(filePath string, list []comments.DiffComment) string {
	if len(list) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("File: %s\n", filePath))
	b.WriteString(fmt.Sprintf("Comments: %d\n\n", len(list)))

	sorted := make([]comments.DiffComment, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartLine < sorted[j].StartLine
	})

	for i, c := range sorted {
		if i > 0 {
			b.WriteString("\n")
		}

		if c.StartLine == c.EndLine {
			b.WriteString(fmt.Sprintf("Line %d (%s):\n", c.StartLine, c.Side))
		} else {
			b.WriteString(fmt.Sprintf("Lines %d-%d (%s):\n", c.StartLine, c.EndLine, c.Side))
		}

		if c.CodeContent != "" {
			for line := range strings.SplitSeq(c.CodeContent, "\n") {
				b.WriteString(fmt.Sprintf("> %s\n", line))
			}
		}

		b.WriteString(c.Text)
		b.WriteString("\n")
	}

	return b.String()
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
