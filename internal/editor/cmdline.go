package editor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
)

// substitutePattern recognizes "[range]s<delim>...".
var substitutePattern = regexp.MustCompile(`^(%|(\d+),(\d+))?s(.)(.*)$`)

// commandHandler edits the ':' line.
type commandHandler struct{}

func (commandHandler) handle(e *Editor, k Key) {
	switch k.Name {
	case KeyEscape:
		e.setMode(normalMode)
		e.input = ""
		e.historyIdx = -1
		e.status = ""
	case KeyEnter:
		cmd := strings.TrimSpace(e.input)
		if cmd != "" {
			e.cmdHistory = pushHistory(e.cmdHistory, cmd, e.opts.HistoryLimit)
		}
		e.input = ""
		e.historyIdx = -1
		e.setMode(normalMode)
		e.execCommand(cmd)
	case KeyBackspace:
		if !e.backspaceInput() {
			e.setMode(normalMode)
		}
	case KeyUp:
		e.input, e.historyIdx = historyPrev(e.cmdHistory, e.historyIdx, e.input)
	case KeyDown:
		e.input, e.historyIdx = historyNext(e.cmdHistory, e.historyIdx, e.input)
	default:
		e.typeInput(k)
	}
}

// typeInput appends printable text to the command or search line.
func (e *Editor) typeInput(k Key) {
	if k.printable() {
		e.input += k.Text
		e.historyIdx = -1
	}
}

// backspaceInput deletes the last grapheme of the input line. It reports
// false when the line was already empty.
func (e *Editor) backspaceInput() bool {
	e.historyIdx = -1
	n := GraphemeCount(e.input)
	if n == 0 {
		return false
	}
	e.input = SliceByGraphemes(e.input, 0, n-1)
	return true
}

// pushHistory moves item to the front of list, dropping duplicates and
// trimming to limit.
func pushHistory(list []string, item string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	for _, s := range list {
		if s != item {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// historyPrev steps to an older history entry.
func historyPrev(list []string, idx int, current string) (string, int) {
	if idx < len(list)-1 {
		idx++
		return list[idx], idx
	}
	return current, idx
}

// historyNext steps to a newer entry; past the newest the line is cleared.
func historyNext(list []string, idx int, current string) (string, int) {
	switch {
	case idx > 0:
		idx--
		return list[idx], idx
	case idx == 0:
		return "", -1
	}
	return current, idx
}

// execCommand runs one ':' command.
func (e *Editor) execCommand(cmd string) {
	log.Debug(log.CatEditor, "ex command", "cmd", cmd)
	if cmd == "" {
		return
	}
	if cmd == "$" {
		e.jumpToRow(e.doc.LineCount() - 1)
		return
	}
	if n, ok := numberAfter(cmd, "l"); ok {
		e.jumpToRow(n - 1)
		return
	}
	if n, ok := recordNumber(cmd); ok {
		e.jumpToRecord(n)
		return
	}
	if substitutePattern.MatchString(cmd) {
		e.Substitute(cmd)
		return
	}

	verb, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)
	force := strings.HasSuffix(verb, "!")
	verb = strings.TrimSuffix(verb, "!")

	switch verb {
	case "w":
		if e.refuseReadOnly() {
			return
		}
		e.requestSave(arg, force, false)
	case "q":
		if force {
			e.emit(ForceQuit{})
		} else {
			e.emit(Quit{})
		}
	case "wq", "x":
		if e.opts.ReadOnly {
			e.emit(Quit{})
			return
		}
		e.requestSave(arg, force, true)
	case "e":
		if arg == "" {
			e.status = "Usage: :e <file>"
			return
		}
		e.emit(FileOpenRequested{Path: arg})
	case "fmt", "format":
		if e.refuseReadOnly() {
			return
		}
		e.Format()
	case "validate":
		e.Validate()
	case "help":
		e.emit(HelpToggleRequested{})
	default:
		e.status = "unknown command: :" + cmd
	}
}

// requestSave validates the buffer (unless forced) and asks the host to write
// it in on-disk form.
func (e *Editor) requestSave(path string, force, quit bool) {
	content := e.doc.Content()
	if !force {
		if msg, ok := e.checkContent(content); !ok {
			e.status = msg
			return
		}
	}
	if e.opts.JSONL {
		content = jsonx.PrettyToJSONL(content)
	}
	e.emit(FileSaveRequested{Content: content, Path: path, QuitAfter: quit})
}

// MarkSaved records a successful write. Redo history does not survive a save.
func (e *Editor) MarkSaved(path string) {
	e.undo.ClearRedo()
	e.status = fmt.Sprintf("%q written", path)
}

func (e *Editor) jumpToRow(row int) {
	e.doc.cursor = Position{Row: max(0, min(row, e.doc.LineCount()-1))}
	e.scrollCursorToTop()
}

// jumpToRecord moves to the first line of JSONL record n, or to line n in
// plain JSON.
func (e *Editor) jumpToRecord(n int) {
	if !e.opts.JSONL {
		e.jumpToRow(n - 1)
		return
	}
	starts := jsonx.BlockStarts(e.doc.Lines())
	if n < 1 || n > len(starts) {
		e.status = fmt.Sprintf("record %d not found", n)
		return
	}
	e.jumpToRow(starts[n-1])
}

// numberAfter parses cmd as prefix followed by digits.
func numberAfter(cmd, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(cmd, prefix)
	if !ok || rest == "" || !isDigits(rest) {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil
}

// recordNumber parses ":<N>" and ":p<N>".
func recordNumber(cmd string) (int, bool) {
	if isDigits(cmd) {
		n, err := strconv.Atoi(cmd)
		return n, err == nil
	}
	return numberAfter(cmd, "p")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
