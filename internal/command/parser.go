package command

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidAction means the line does not start with a known action token
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidNumbers means a bulk action was followed by a malformed index list
	ErrInvalidNumbers = errors.New("invalid numbers")
)

var (
	specChars   = regexp.MustCompile(`^[\d,\-\s]+$`)
	specGrammar = regexp.MustCompile(`^\s*\d+\s*(?:-\s*\d+\s*)?(?:,\s*\d+\s*(?:-\s*\d+\s*)?)*\s*$`)
)

// Parse validates one line of input, e.g. "R1-3" or "KS".
// The line is upper-cased and trimmed before it is tokenized.
func Parse(line string) (Command, error) {
	line = strings.ToUpper(strings.TrimSpace(line))

	word, rest := splitWord(line)
	action, ok := Lookup(word)
	if !ok {
		return Command{}, ErrInvalidAction
	}

	rest = strings.TrimSpace(rest)
	if rest != "" && !specChars.MatchString(rest) {
		return Command{}, ErrInvalidAction
	}

	cmd := Command{Action: action}
	if rest == "" {
		return cmd, nil
	}

	switch {
	case action.Control():
		// Q and RE take no arguments; anything trailing is ignored
	case action.Bulk():
		if !specGrammar.MatchString(rest) {
			return Command{}, ErrInvalidNumbers
		}
		cmd.Spec = rest
	case action.SingleTarget():
		// the target is always asked for separately
		cmd.SpecDropped = true
	}

	return cmd, nil
}

// splitWord cuts the leading run of letters off the line
func splitWord(line string) (string, string) {
	i := strings.IndexFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}
