package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Component debe fijar el campo "component" en cada evento del sublogger
// sin tocar el logger padre.
func TestComponent_FijaElCampoEnElSublogger(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zl: zerolog.New(&buf)}

	l.Component("http").Info().Msg("servidor iniciado")
	assert.Contains(t, buf.String(), `"component":"http"`)
	assert.Contains(t, buf.String(), `"servidor iniciado"`)

	buf.Reset()
	l.Info().Msg("sin componente")
	assert.NotContains(t, buf.String(), `"component"`,
		"el logger padre no debe heredar el campo del sublogger")
}

func TestParseLevel_NivelDesconocidoCaeEnInfo(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, parseLevel("no-existe"))
	require.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	require.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
}
