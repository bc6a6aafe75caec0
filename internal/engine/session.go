package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/model"
)

// DefaultMarkup is the retail multiplier applied when none is given.
var DefaultMarkup = decimal.NewFromInt(2)

// Session carries one conversion run's parameters and its label selections.
// Selections are scoped here rather than in package-level state so a re-run
// always starts clean.
type Session struct {
	Season     string
	StartDate  string
	EndDate    string
	Markup     decimal.Decimal
	Selections model.ClassificationSet
}

// NewSession validates the user-facing parameters and builds a session.
// Processing never starts with an empty season, empty dates or a
// non-positive markup.
func NewSession(season, startDate, endDate string, markup decimal.Decimal) (*Session, error) {
	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("%w: season is required", common.ErrInvalidConfig)
	}
	if strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", common.ErrInvalidConfig)
	}
	if !markup.IsPositive() {
		return nil, fmt.Errorf("%w: markup factor must be positive, got %s", common.ErrInvalidConfig, markup)
	}

	return &Session{
		Season:     season,
		StartDate:  startDate,
		EndDate:    endDate,
		Markup:     markup,
		Selections: make(model.ClassificationSet),
	}, nil
}
