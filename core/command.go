package core

// CommandHandler handles a user command. args is empty for a bare command.
// Returning an ErrorKind (or Warn(kind)) reports that kind; any other error
// is reported with its own text.
type CommandHandler func(args Args) error

// Command binds a name to its handler
type Command struct {
	Name    string
	Handler CommandHandler
}

// CommandRegistry is a fixed-capacity, append-only table of user commands.
// Names are unique and matched exactly.
type CommandRegistry struct {
	commands []Command
	locked   bool
}

// NewCommandRegistry creates a registry holding up to capacity commands
func NewCommandRegistry(capacity int) *CommandRegistry {
	return &CommandRegistry{
		commands: make([]Command, 0, capacity),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, handler CommandHandler) error {
	if r.locked {
		return ErrRegistryLocked
	}
	if handler == nil {
		return ErrUndefinedUserCommand
	}
	if _, exists := r.lookup([]byte(name)); exists {
		return ErrDuplicateCommand
	}
	if len(r.commands) == cap(r.commands) {
		return ErrRegistryFull
	}

	r.commands = append(r.commands, Command{Name: name, Handler: handler})
	return nil
}

// lookup finds the command whose name equals name exactly
func (r *CommandRegistry) lookup(name []byte) (*Command, bool) {
	for i := range r.commands {
		if r.commands[i].Name == string(name) {
			return &r.commands[i], true
		}
	}
	return nil, false
}

// GetCommand retrieves a command by registration index
func (r *CommandRegistry) GetCommand(index int) (*Command, bool) {
	if index < 0 || index >= len(r.commands) {
		return nil, false
	}
	return &r.commands[index], true
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	return len(r.commands)
}

// Capacity returns the maximum number of commands
func (r *CommandRegistry) Capacity() int {
	return cap(r.commands)
}

// Names returns the registered names in registration order
func (r *CommandRegistry) Names() []string {
	names := make([]string, len(r.commands))
	for i := range r.commands {
		names[i] = r.commands[i].Name
	}
	return names
}

// Dispatch calls the handler registered under name.
// The registry refuses registrations while the handler runs.
func (r *CommandRegistry) Dispatch(name []byte, args Args) (bool, error) {
	cmd, ok := r.lookup(name)
	if !ok {
		return false, nil
	}

	r.locked = true
	defer func() { r.locked = false }()

	return true, cmd.Handler(args)
}
