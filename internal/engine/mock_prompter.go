package engine

import (
	"context"

	"github.com/88maurosls/asics/internal/model"
)

// MockPrompter answers every prompted key from a scripted map. Keys without
// a scripted answer fall back to Default.
type MockPrompter struct {
	Answers  map[model.ClassificationKey]model.Label
	Default  model.Label
	Err      error
	Prompted [][]model.ClassificationKey
}

// NewMockPrompter creates a mock prompter with the given scripted answers.
func NewMockPrompter(answers map[model.ClassificationKey]model.Label) *MockPrompter {
	return &MockPrompter{
		Answers: answers,
		Default: model.LabelUomo,
	}
}

// ConfirmLabels implements the Prompter interface.
func (m *MockPrompter) ConfirmLabels(_ context.Context, keys []model.ClassificationKey) (map[model.ClassificationKey]model.Label, error) {
	m.Prompted = append(m.Prompted, keys)
	if m.Err != nil {
		return nil, m.Err
	}

	decisions := make(map[model.ClassificationKey]model.Label, len(keys))
	for _, key := range keys {
		if label, ok := m.Answers[key]; ok {
			decisions[key] = label
		} else {
			decisions[key] = m.Default
		}
	}
	return decisions, nil
}
