package editor

var bracketPairs = map[byte]byte{'{': '}', '[': ']', '(': ')'}

var bracketPairsRev = map[byte]byte{'}': '{', ']': '[', ')': '('}

// bytePos addresses a byte within the line array. Brackets are ASCII, so
// bracket scans work on bytes and convert to grapheme columns at the end.
type bytePos struct {
	row, col int
}

// matchForward finds the closer for the opener at (row, col) by counting
// depth of the same bracket type across lines.
func matchForward(lines []string, row, col int) (bytePos, bool) {
	line := lines[row]
	if col < 0 || col >= len(line) {
		return bytePos{}, false
	}
	open := line[col]
	closer, ok := bracketPairs[open]
	if !ok {
		return bytePos{}, false
	}
	depth := 1
	c := col + 1
	for r := row; r < len(lines); r++ {
		ln := lines[r]
		for ; c < len(ln); c++ {
			switch ln[c] {
			case open:
				depth++
			case closer:
				depth--
				if depth == 0 {
					return bytePos{r, c}, true
				}
			}
		}
		c = 0
	}
	return bytePos{}, false
}

// matchBackward finds the opener for the closer at (row, col).
func matchBackward(lines []string, row, col int) (bytePos, bool) {
	line := lines[row]
	if col < 0 || col >= len(line) {
		return bytePos{}, false
	}
	closer := line[col]
	open, ok := bracketPairsRev[closer]
	if !ok {
		return bytePos{}, false
	}
	depth := 1
	c := col - 1
	for r := row; r >= 0; r-- {
		ln := lines[r]
		if r != row {
			c = len(ln) - 1
		}
		for ; c >= 0; c-- {
			switch ln[c] {
			case closer:
				depth++
			case open:
				depth--
				if depth == 0 {
					return bytePos{r, c}, true
				}
			}
		}
	}
	return bytePos{}, false
}

// matchAll pairs every opener with its closer in a single pass. Each bracket
// type keeps its own stack, which gives the same pairs as matchForward.
func matchAll(lines []string) map[bytePos]bytePos {
	out := make(map[bytePos]bytePos)
	stacks := map[byte][]bytePos{}
	for r, ln := range lines {
		for c := 0; c < len(ln); c++ {
			ch := ln[c]
			if _, ok := bracketPairs[ch]; ok {
				stacks[ch] = append(stacks[ch], bytePos{r, c})
				continue
			}
			if open, ok := bracketPairsRev[ch]; ok {
				st := stacks[open]
				if len(st) == 0 {
					continue
				}
				out[st[len(st)-1]] = bytePos{r, c}
				stacks[open] = st[:len(st)-1]
			}
		}
	}
	return out
}

// MatchBracket returns the grapheme position of the bracket matching the one
// at pos, if pos is on a bracket.
func MatchBracket(lines []string, pos Position) (Position, bool) {
	line := lines[pos.Row]
	off := GraphemeToByteOffset(line, pos.Col)
	if off >= len(line) {
		return pos, false
	}
	var m bytePos
	var ok bool
	if _, isOpen := bracketPairs[line[off]]; isOpen {
		m, ok = matchForward(lines, pos.Row, off)
	} else if _, isClose := bracketPairsRev[line[off]]; isClose {
		m, ok = matchBackward(lines, pos.Row, off)
	}
	if !ok {
		return pos, false
	}
	return Position{Row: m.row, Col: ByteToGraphemeOffset(lines[m.row], m.col)}, true
}
