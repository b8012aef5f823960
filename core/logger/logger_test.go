package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"DebugConsole", Config{Level: "debug", Format: "console"}, false},
		{"InfoJSON", Config{Level: "info", Format: "json"}, false},
		{"EmptyLevel", Config{}, false},
		{"WarnConsole", Config{Level: "warn", Format: "console"}, false},
		{"InvalidLevel", Config{Level: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_LevelIsApplied(t *testing.T) {
	l, err := New(&Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.ErrorLevel))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "launcher.log")

	l, err := New(&Config{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	l.Info("written to file")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNew_FileFallsBackToConsole(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(notADir, nil, 0o644))

	tests := []struct {
		name string
		file string
	}{
		{"PathIsDirectory", dir},
		{"ParentIsFile", filepath.Join(notADir, "launcher.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&Config{Level: "info", Format: "json", File: tt.file})
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.True(t, l.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestWithRayID(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	base := zap.NewNop()
	assert.Same(t, base, WithRayID(base, c))

	c.Locals("ray_id", "abc")
	assert.NotSame(t, base, WithRayID(base, c))
}
