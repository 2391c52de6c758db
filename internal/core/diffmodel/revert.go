package diffmodel

// ApplyRevert returns a copy of d with the nth change segment restored to
// its original content: the segment becomes a context run of the lines it
// had deleted (or disappears for a pure addition), and new-side counters
// after it shift accordingly. Ordinals are 1-based in diff order, the same
// sequence change blocks are numbered in, so a reverted block vanishes on
// the next segmentation. Unknown ordinals return d unchanged.
func ApplyRevert(d *FileDiff, n int) *FileDiff {
	if d == nil || n < 1 {
		return d
	}

	out := &FileDiff{Path: d.Path, Lang: d.Lang, Hunks: make([]Hunk, 0, len(d.Hunks))}
	seen := 0
	delta := 0 // new-side line shift applied to hunks after the revert

	for _, h := range d.Hunks {
		nh := h
		nh.NewStart += delta
		nh.Segments = make([]Segment, 0, len(h.Segments))

		skipChanges := h.Additions() == 0 && h.Deletions() == 0

		for _, seg := range h.Segments {
			isChange := !seg.IsContext() && (len(seg.Added) > 0 || len(seg.Deleted) > 0)
			if !skipChanges && isChange {
				seen++
				if seen == n {
					shift := len(seg.Deleted) - len(seg.Added)
					delta += shift
					nh.NewCount += shift
					if len(seg.Deleted) > 0 {
						nh.Segments = append(nh.Segments, Segment{Context: seg.Deleted})
					}
					continue
				}
			}
			nh.Segments = append(nh.Segments, seg)
		}

		out.Hunks = append(out.Hunks, nh)
	}

	if seen < n {
		return d
	}
	return out
}
