package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadColorMapping(t *testing.T) {
	input := strings.Join([]string{
		"BLACK;NERO",
		"# comment line",
		"",
		"WHITE;BIANCO",
		"malformed line without separator",
		"  ;EMPTY KEY",
		"BLU;BLU",
	}, "\n")

	mapping, err := LoadColorMapping(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, mapping.Len())
}

func TestColorMappingLookup(t *testing.T) {
	// Line order decides which prefix wins, so "BLACK/WHITE" must be listed
	// before the shorter "BLACK" to ever match.
	input := strings.Join([]string{
		"BLACK/WHITE;NERO E BIANCO",
		"BLACK;NERO",
		"WHITE;BIANCO",
	}, "\n")

	mapping, err := LoadColorMapping(strings.NewReader(input))
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{"BLACK/WHITE", "NERO E BIANCO"},
		{"BLACK", "NERO"},
		{"black/graphite grey", "NERO"},
		{"  White Sand ", "BIANCO"},
		{"PURPLE", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapping.Lookup(tt.name))
		})
	}
}
