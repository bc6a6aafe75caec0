package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/88maurosls/asics/internal/model"
)

// Prompter asks the user for a gender label per article+color pair, one
// pair at a time, with a progress bar across the whole batch.
type Prompter struct {
	writer io.Writer
	reader *bufio.Reader
}

// NewPrompter creates a prompter reading from r and writing to w. Nil
// arguments default to stdin and stdout.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// ConfirmLabels prompts for every key in order and returns the collected
// decisions. The user answers U, D or X; an empty answer repeats the
// question, "q" aborts the session.
func (p *Prompter) ConfirmLabels(ctx context.Context, keys []model.ClassificationKey) (map[model.ClassificationKey]model.Label, error) {
	if _, err := fmt.Fprintln(p.writer, TitleStyle.Render(fmt.Sprintf("%d articles need a classification", len(keys)))); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	bar := progressbar.NewOptions(len(keys),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription("classifying"),
		progressbar.OptionClearOnFinish(),
	)

	decisions := make(map[model.ClassificationKey]model.Label, len(keys))
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		label, err := p.promptOne(key)
		if err != nil {
			return nil, err
		}
		decisions[key] = label
		_ = bar.Add(1)
	}

	if _, err := fmt.Fprintln(p.writer, SuccessStyle.Render("All articles classified.")); err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}

	return decisions, nil
}

func (p *Prompter) promptOne(key model.ClassificationKey) (model.Label, error) {
	header := BoxStyle.Render(fmt.Sprintf("Articolo: %s  Colore: %s", BoldStyle.Render(key.Article), BoldStyle.Render(key.Color)))
	if _, err := fmt.Fprintln(p.writer, header); err != nil {
		return model.LabelUnset, fmt.Errorf("failed to write article box: %w", err)
	}

	for {
		if _, err := fmt.Fprint(p.writer, SubtleStyle.Render("  [U]omo / [D]onna / [X] Unisex / [Q]uit:")+" "); err != nil {
			return model.LabelUnset, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil && line == "" {
			return model.LabelUnset, fmt.Errorf("failed to read answer: %w", err)
		}

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "U", "UOMO":
			return model.LabelUomo, nil
		case "D", "DONNA":
			return model.LabelDonna, nil
		case "X", "UNISEX":
			return model.LabelUnisex, nil
		case "Q", "QUIT":
			return model.LabelUnset, fmt.Errorf("classification canceled by user")
		default:
			if _, err := fmt.Fprintln(p.writer, WarningStyle.Render("  Please answer U, D or X.")); err != nil {
				return model.LabelUnset, fmt.Errorf("failed to write retry hint: %w", err)
			}
		}
	}
}
