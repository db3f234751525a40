// Package commands parses the palette's slash-command grammar into
// typed commands and dispatches them to configured handlers.
package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeShow   Type = "show"
	TypeRemove Type = "remove"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	URL string
}

type ToggleArgs struct {
	Target string
	Kind   string
}

type ShowArgs struct {
	Subject string
}

type RemoveArgs struct {
	Target string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *ToggleArgs
	Show   *ShowArgs
	Remove *RemoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeToggle:
		return parseToggle(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires exactly one problem URL"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{URL: args[0]}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a problem and a review kind"}
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{
		Target: strings.ToLower(args[0]),
		Kind:   strings.ToLower(args[1]),
	}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: strings.ToLower(args[0])}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remove requires exactly one problem"}
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Target: strings.ToLower(args[0])}}, nil
}
