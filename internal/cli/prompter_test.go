package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/88maurosls/asics/internal/model"
)

func testKeys() []model.ClassificationKey {
	return []model.ClassificationKey{
		{Article: "1011A792", Color: "001"},
		{Article: "1012B413", Color: "700"},
		{Article: "1013C555", Color: "020"},
	}
}

func TestConfirmLabels(t *testing.T) {
	input := strings.NewReader("u\nd\nx\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	decisions, err := prompter.ConfirmLabels(context.Background(), testKeys())
	require.NoError(t, err)

	assert.Equal(t, model.LabelUomo, decisions[model.ClassificationKey{Article: "1011A792", Color: "001"}])
	assert.Equal(t, model.LabelDonna, decisions[model.ClassificationKey{Article: "1012B413", Color: "700"}])
	assert.Equal(t, model.LabelUnisex, decisions[model.ClassificationKey{Article: "1013C555", Color: "020"}])

	assert.Contains(t, output.String(), "1011A792")
}

func TestConfirmLabelsFullWords(t *testing.T) {
	input := strings.NewReader("UOMO\nDonna\nunisex\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	decisions, err := prompter.ConfirmLabels(context.Background(), testKeys())
	require.NoError(t, err)
	assert.Len(t, decisions, 3)
}

func TestConfirmLabelsRetriesInvalidAnswer(t *testing.T) {
	keys := testKeys()[:1]
	input := strings.NewReader("maybe\n\nu\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	decisions, err := prompter.ConfirmLabels(context.Background(), keys)
	require.NoError(t, err)

	assert.Equal(t, model.LabelUomo, decisions[keys[0]])
	assert.Contains(t, output.String(), "Please answer")
}

func TestConfirmLabelsQuit(t *testing.T) {
	input := strings.NewReader("u\nq\n")
	var output bytes.Buffer

	prompter := NewPrompter(input, &output)
	_, err := prompter.ConfirmLabels(context.Background(), testKeys())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled")
}

func TestConfirmLabelsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prompter := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := prompter.ConfirmLabels(ctx, testKeys())
	require.ErrorIs(t, err, context.Canceled)
}
