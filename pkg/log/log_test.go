package log_test

import (
	"bytes"
	stdlog "log"
	"testing"

	"github.com/mechiko/bilevelmatch/pkg/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerIsSilent(t *testing.T) {
	log.DisableLoggers()
	require.NotPanics(t, func() {
		log.Debug.Printf("hello %s", "world")
		log.Info.Println("hi")
	})
}

func TestSetDebugLoggerRoutesPrintf(t *testing.T) {
	var buf bytes.Buffer
	log.SetDebugLogger(stdlog.New(&buf, "", 0))
	log.Debug.Printf("mass=%d", 4)
	require.Contains(t, buf.String(), "mass=4")
	log.DisableLoggers()
}

func TestSetZapLoggerBridgesAllFour(t *testing.T) {
	var buf bytes.Buffer
	ws := zapcore.AddSync(&buf)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()), ws, zapcore.DebugLevel)
	z := zap.New(core)

	log.SetZapLogger(z)
	log.Debug.Printf("debug-line")
	log.Info.Printf("info-line")
	log.Stats.Printf("patterns=%d classes=%d", 3, 2)
	log.Trace.Printf("trace-line")
	require.Contains(t, buf.String(), "debug-line")
	require.Contains(t, buf.String(), "info-line")
	require.Contains(t, buf.String(), "patterns=3 classes=2")
	require.Contains(t, buf.String(), "trace-line")
	log.DisableLoggers()
}
