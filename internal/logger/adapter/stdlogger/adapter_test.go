package stdlogger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushcast/pushcast/internal/logger/adapter/stdlogger"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := stdlogger.New()
	l.Infof("%s registered", "abc123")
	l.Warningf("slow query %dms", 250)
	l.Errorf("%v", "record not found")
	l.Debugf("hidden %d", 1)
	l.Printf("/app/store.go:42\n[1.2ms] SELECT %d", 1)

	l.PrintLevel = zerolog.InfoLevel
	l.Printf("/app/store.go:42\n[1.2ms] SELECT %d", 2)

	type line struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}

	var got []line

	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var l line
		require.NoError(t, json.Unmarshal([]byte(raw), &l))
		got = append(got, l)
	}

	assert.Equal(t, []line{
		{Level: "info", Message: "abc123 registered"},
		{Level: "warn", Message: "slow query 250ms"},
		{Level: "error", Message: "record not found"},
		{Level: "info", Message: "/app/store.go:42 [1.2ms] SELECT 2"},
	}, got)
}
