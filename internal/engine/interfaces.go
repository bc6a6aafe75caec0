package engine

import (
	"context"

	"github.com/88maurosls/asics/internal/model"
)

// Prompter is the contract for collecting the user's label decisions. It is
// called once per run with every key still unset after reconciliation.
type Prompter interface {
	ConfirmLabels(ctx context.Context, keys []model.ClassificationKey) (map[model.ClassificationKey]model.Label, error)
}
