// Package commands answers the read-only ledger queries operators send over chat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	CalculatePriceBoard(ctx context.Context) (string, error)
	CalculateStockSummary(ctx context.Context, categories ...models.Category) (string, error)
	CalculateBalance(ctx context.Context, categories ...models.Category) (string, error)
	CalculateStatement(ctx context.Context, party string) (string, error)
}

// Dispatcher turns a parsed command into a reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// HelpReply is sent for help and anything the parser does not recognize.
var HelpReply = models.AutomationReply{
	Title: "Feedbook commands",
	Message: strings.Join([]string{
		"/prices - latest feed cost per kg",
		"/stock [feed|medicine|chick] - items on hand",
		"/balance [feed|medicine|chick] - supplier dues",
		"/statement <party name> - sales billed to a party",
	}, "\n"),
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting ReportingAdapter
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reporting: reporting, logger: logger}
}

// HandleCommand runs the query behind cmd and returns the reply text.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandPrices:
		return s.reporting.CalculatePriceBoard(ctx)
	case models.CommandStock:
		categories, err := parseCategories(cmd.Args)
		if err != nil {
			return "", err
		}
		return s.reporting.CalculateStockSummary(ctx, categories...)
	case models.CommandBalance:
		categories, err := parseCategories(cmd.Args)
		if err != nil {
			return "", err
		}
		return s.reporting.CalculateBalance(ctx, categories...)
	case models.CommandStatement:
		party := strings.TrimSpace(strings.Join(cmd.Args, " "))
		if party == "" {
			return "", fmt.Errorf("%w: party name required", ErrInvalidArguments)
		}
		return s.reporting.CalculateStatement(ctx, party)
	case models.CommandHelp, models.CommandUnknown:
		return HelpReply.Title + "\n" + HelpReply.Message, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func parseCategories(args []string) ([]models.Category, error) {
	out := make([]models.Category, 0, len(args))
	for _, arg := range args {
		c, err := models.ParseCategory(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		}
		out = append(out, c)
	}
	return out, nil
}
