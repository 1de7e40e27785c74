package compose

import "strings"

// CommandSet provides slash command names in a stable order.
type CommandSet interface {
	CommandNames() []string
}

// UserSet provides the user names of the current conversation in a stable order.
type UserSet interface {
	UserNames() []string
}

// Completer cycles through completions for the last word of the input.
//
// The first Complete after a Reset remembers the word being completed; later
// calls keep matching against that remembered word while the input shows the
// previous candidate, so repeated tabs rotate through every match.
type Completer struct {
	commands CommandSet
	users    UserSet

	word     string
	rotation int
}

// NewCompleter creates a completer over the given sources. Either may be nil.
func NewCompleter(commands CommandSet, users UserSet) *Completer {
	return &Completer{commands: commands, users: users}
}

// SetSources swaps the command and user sources and resets the rotation.
func (c *Completer) SetSources(commands CommandSet, users UserSet) {
	c.commands = commands
	c.users = users
	c.Reset()
}

// Reset forgets the remembered word and restarts the rotation.
func (c *Completer) Reset() {
	c.word = ""
	c.rotation = 0
}

// Complete returns input with its last space-separated token replaced by the
// next candidate. Words starting with "/" complete command names, and only
// when commandContext is set; other words complete user names, ignoring a
// leading "@". When no candidate is left at the current rotation the
// rotation restarts and Complete returns false.
func (c *Completer) Complete(input string, commandContext bool) (string, bool) {
	tokens := strings.Split(input, " ")
	last := tokens[len(tokens)-1]
	if last == "" {
		c.rotation = 0
		return "", false
	}

	if c.word == "" {
		c.word = last
	}

	var candidate string
	var ok bool
	if strings.HasPrefix(c.word, "/") {
		if commandContext && c.commands != nil {
			candidate, ok = c.nth(c.commands.CommandNames(), strings.TrimPrefix(c.word, "/"))
			candidate = "/" + candidate
		}
	} else if c.users != nil {
		candidate, ok = c.nth(c.users.UserNames(), strings.TrimPrefix(c.word, "@"))
	}

	if !ok {
		c.rotation = 0
		return "", false
	}

	tokens[len(tokens)-1] = candidate
	return strings.Join(tokens, " "), true
}

// nth returns the rotation-th name with the given prefix and advances the rotation.
func (c *Completer) nth(names []string, prefix string) (string, bool) {
	j := 0
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if j == c.rotation {
			c.rotation++
			return name, true
		}
		j++
	}
	return "", false
}

// Word returns the remembered word, empty when no completion is in progress.
func (c *Completer) Word() string {
	return c.word
}
