package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestEnvironmentHook(t *testing.T) {
	tests := []struct {
		name  string
		isWSL bool
		want  string
	}{
		{"wsl side", true, `"env":"wsl"`},
		{"windows side", false, `"env":"windows"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(NewEnvironmentHook(tt.isWSL))

			logger.Info().Msg("boundary check")

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
