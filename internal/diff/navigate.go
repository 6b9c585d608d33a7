package diff

// NextHunk returns the index of the first hunk starting after row, wrapping
// to the first hunk. It returns -1 when there are no hunks.
func NextHunk(hunks []Hunk, row int) int {
	if len(hunks) == 0 {
		return -1
	}
	for i, h := range hunks {
		if h.Start > row {
			return i
		}
	}
	return 0
}

// PrevHunk returns the index of the last hunk starting before row, wrapping
// to the last hunk. It returns -1 when there are no hunks.
func PrevHunk(hunks []Hunk, row int) int {
	if len(hunks) == 0 {
		return -1
	}
	for i := len(hunks) - 1; i >= 0; i-- {
		if hunks[i].Start < row {
			return i
		}
	}
	return len(hunks) - 1
}

// HunkAt returns the index of the hunk containing row, or -1.
func HunkAt(hunks []Hunk, row int) int {
	for i, h := range hunks {
		if row >= h.Start && row < h.End() {
			return i
		}
	}
	return -1
}
