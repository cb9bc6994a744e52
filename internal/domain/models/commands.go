package models

import "strings"

// CommandType enumerates the read-only queries the operator can send over WhatsApp.
type CommandType string

const (
	CommandPrices    CommandType = "prices"
	CommandStock     CommandType = "stock"
	CommandBalance   CommandType = "balance"
	CommandStatement CommandType = "statement"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

// Command represents a parsed operator instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
// Arguments keep their original casing so party names survive intact.
func ParseCommand(message string) Command {
	trimmed := strings.TrimSpace(message)
	cmd := Command{Raw: message}

	tokens := strings.Fields(trimmed)
	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch head {
	case string(CommandPrices), "price":
		cmd.Type = CommandPrices
	case string(CommandStock):
		cmd.Type = CommandStock
	case string(CommandBalance):
		cmd.Type = CommandBalance
	case string(CommandStatement):
		cmd.Type = CommandStatement
	case string(CommandHelp):
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
