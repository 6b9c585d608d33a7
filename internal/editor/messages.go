package editor

// Intent is a request from the editor to its host. The editor performs no I/O;
// the host acts on intents returned by HandleKey.
type Intent interface {
	intent()
}

// FileSaveRequested asks the host to write Content. An empty Path means the
// current file.
type FileSaveRequested struct {
	Content   string
	Path      string
	QuitAfter bool
}

// FileOpenRequested asks the host to open Path.
type FileOpenRequested struct {
	Path string
}

// Quit asks the host to close the editor.
type Quit struct{}

// ForceQuit asks the host to close the editor discarding changes.
type ForceQuit struct{}

// HelpToggleRequested asks the host to show or hide help.
type HelpToggleRequested struct{}

// JSONValidated reports the result of :validate.
type JSONValidated struct {
	Content string
	Valid   bool
	Err     string
}

// EmbeddedEditRequested asks the host to open Content (the pretty-printed JSON
// held in a string value) in a nested editor. The source span covers the
// string literal including its quotes, in grapheme columns.
type EmbeddedEditRequested struct {
	Content        string
	SourceRow      int
	SourceColStart int
	SourceColEnd   int
}

func (FileSaveRequested) intent()     {}
func (FileOpenRequested) intent()     {}
func (Quit) intent()                  {}
func (ForceQuit) intent()             {}
func (HelpToggleRequested) intent()   {}
func (JSONValidated) intent()         {}
func (EmbeddedEditRequested) intent() {}
