package commands

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExtraArgs indicates more positional arguments than a command accepts.
var ErrExtraArgs = errors.New("unexpected arguments")

// ParseTaskID returns the task id from the positional arguments.
// No argument yields "", which the controller rejects with its own message.
func ParseTaskID(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return strings.TrimSpace(args[0]), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrExtraArgs, strings.Join(args[1:], " "))
	}
}
