package undo

// Command is a reversible unit of work. Apply performs or re-performs the
// action; Revert rolls it back. A command moves between the undo and redo
// stacks for the lifetime of the history, so implementations must tolerate
// Apply after Revert and vice versa, any number of times.
type Command interface {
	Apply() error
	Revert() error
}

// funcCommand adapts a pair of closures to the Command interface.
type funcCommand struct {
	apply  func() error
	revert func() error
}

func (c *funcCommand) Apply() error {
	return c.apply()
}

func (c *funcCommand) Revert() error {
	return c.revert()
}

// Func builds a Command from an apply/revert pair. Both funcs must be
// non-nil.
func Func(apply, revert func() error) Command {
	return &funcCommand{apply: apply, revert: revert}
}
