package editor

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the key.
	Executed ExecuteResult = iota
	// Skipped means pre-conditions weren't met (e.g. join on the last line).
	Skipped
)

// CommandKind classifies a command for read-only checks and dot-repeat.
type CommandKind int

const (
	// KindMotion moves the cursor or viewport. Allowed in Visual mode.
	KindMotion CommandKind = iota
	// KindView changes presentation (folds, search navigation, status).
	KindView
	// KindEdit mutates the buffer and is recorded for dot-repeat.
	KindEdit
	// KindInsert enters Insert mode; recording continues until Escape.
	KindInsert
	// KindHistory is undo/redo: refused on read-only buffers, never recorded.
	KindHistory
	// KindMode switches to another mode without editing.
	KindMode
)

// mutates reports whether the kind is refused on read-only buffers.
func (k CommandKind) mutates() bool {
	return k == KindEdit || k == KindInsert || k == KindHistory
}

// recorded reports whether the kind starts a dot-repeat recording.
func (k CommandKind) recorded() bool {
	return k == KindEdit || k == KindInsert
}

// Command is a key-triggered editor operation.
type Command interface {
	// Execute applies the command to the editor.
	Execute(e *Editor) ExecuteResult

	// Keys returns the trigger key(s), e.g. []string{"j", "down"}.
	Keys() []string

	// ID returns a hierarchical identifier such as "move.down" or "fold.toggle".
	ID() string

	// Kind classifies the command.
	Kind() CommandKind
}

// funcCommand adapts a function to the Command interface.
type funcCommand struct {
	id   string
	keys []string
	kind CommandKind
	run  func(e *Editor) ExecuteResult
}

func (c *funcCommand) Execute(e *Editor) ExecuteResult { return c.run(e) }
func (c *funcCommand) Keys() []string                  { return c.keys }
func (c *funcCommand) ID() string                      { return c.id }
func (c *funcCommand) Kind() CommandKind               { return c.kind }

// newCommand builds a command whose run function always executes.
func newCommand(id string, kind CommandKind, keys []string, run func(e *Editor)) Command {
	return &funcCommand{id: id, keys: keys, kind: kind, run: func(e *Editor) ExecuteResult {
		run(e)
		return Executed
	}}
}

// ============================================================================
// CommandRegistry
// ============================================================================

// CommandRegistry provides mode-aware, key-based command dispatch.
type CommandRegistry struct {
	commands map[ModeKind]map[string]Command
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[ModeKind]map[string]Command)}
}

// Register adds cmd under each of its keys for mode.
func (r *CommandRegistry) Register(mode ModeKind, cmd Command) {
	if r.commands[mode] == nil {
		r.commands[mode] = make(map[string]Command)
	}
	for _, key := range cmd.Keys() {
		r.commands[mode][key] = cmd
	}
}

// Get retrieves the command bound to key in mode.
func (r *CommandRegistry) Get(mode ModeKind, key string) (Command, bool) {
	if modeMap, ok := r.commands[mode]; ok {
		if cmd, ok := modeMap[key]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// ============================================================================
// PendingCommandRegistry
// ============================================================================

// PendingCommandRegistry dispatches two-key combos: (operator, second key).
type PendingCommandRegistry struct {
	commands  map[rune]map[string]Command
	operators map[rune]CommandKind
}

// NewPendingCommandRegistry creates an empty pending command registry.
func NewPendingCommandRegistry() *PendingCommandRegistry {
	return &PendingCommandRegistry{
		commands:  make(map[rune]map[string]Command),
		operators: make(map[rune]CommandKind),
	}
}

// Operator declares a combo prefix. The kind decides whether typing the
// prefix alone is refused on read-only buffers and starts dot recording.
func (r *PendingCommandRegistry) Operator(op rune, kind CommandKind) {
	r.operators[op] = kind
}

// IsOperator reports whether op starts a combo.
func (r *PendingCommandRegistry) IsOperator(op rune) (CommandKind, bool) {
	kind, ok := r.operators[op]
	return kind, ok
}

// Register adds a command for operator followed by secondKey.
func (r *PendingCommandRegistry) Register(operator rune, secondKey string, cmd Command) {
	if r.commands[operator] == nil {
		r.commands[operator] = make(map[string]Command)
	}
	r.commands[operator][secondKey] = cmd
}

// Get retrieves the command for a combo.
func (r *PendingCommandRegistry) Get(operator rune, secondKey string) (Command, bool) {
	if opMap, ok := r.commands[operator]; ok {
		if cmd, ok := opMap[secondKey]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// PendingCommandBuilder holds the buffered first key of a combo.
type PendingCommandBuilder struct {
	operator rune
}

// Clear resets the builder.
func (b *PendingCommandBuilder) Clear() { b.operator = 0 }

// IsEmpty reports whether no combo is pending.
func (b *PendingCommandBuilder) IsEmpty() bool { return b.operator == 0 }

// SetOperator buffers the first key.
func (b *PendingCommandBuilder) SetOperator(op rune) { b.operator = op }

// Operator returns the buffered first key.
func (b *PendingCommandBuilder) Operator() rune { return b.operator }

// String renders the pending key for the status line.
func (b *PendingCommandBuilder) String() string {
	if b.operator == 0 {
		return ""
	}
	return string(b.operator)
}
