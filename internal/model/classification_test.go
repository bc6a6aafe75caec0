package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationSetReconcile(t *testing.T) {
	existing := ClassificationSet{
		{Article: "1011A792", Color: "001"}: LabelUomo,
		{Article: "1012B413", Color: "700"}: LabelDonna,
	}

	merged := existing.Reconcile([]ClassificationKey{
		{Article: "1011A792", Color: "001"}, // already classified
		{Article: "1013C555", Color: "020"}, // new
	})

	// Existing entries survive untouched.
	assert.Equal(t, LabelUomo, merged[ClassificationKey{Article: "1011A792", Color: "001"}])
	assert.Equal(t, LabelDonna, merged[ClassificationKey{Article: "1012B413", Color: "700"}])
	// New keys come in unset.
	assert.Equal(t, LabelUnset, merged[ClassificationKey{Article: "1013C555", Color: "020"}])
	assert.Len(t, merged, 3)

	// The receiver is untouched.
	assert.Len(t, existing, 2)
}

func TestClassificationSetUnset(t *testing.T) {
	set := ClassificationSet{
		{Article: "A", Color: "001"}: LabelUomo,
		{Article: "B", Color: "002"}: LabelUnset,
		{Article: "C", Color: "003"}: LabelUnset,
	}

	unset := set.Unset()
	assert.Len(t, unset, 2)
	for _, key := range unset {
		assert.Equal(t, LabelUnset, set[key])
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input string
		want  Label
	}{
		{"UOMO", LabelUomo},
		{"uomo", LabelUomo},
		{" Donna ", LabelDonna},
		{"unisex", LabelUnisex},
		{"", LabelUnset},
		{"  ", LabelUnset},
		{"BAMBINO", LabelUnset},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLabel(tt.input), "input %q", tt.input)
	}
}

func TestLabelValid(t *testing.T) {
	assert.True(t, LabelUomo.Valid())
	assert.True(t, LabelDonna.Valid())
	assert.True(t, LabelUnisex.Valid())
	assert.False(t, LabelUnset.Valid())
	assert.False(t, Label("BAMBINO").Valid())
}
