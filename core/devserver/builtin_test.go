package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dev-launcher/core/launcher"
	"dev-launcher/core/loader"
	"dev-launcher/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingFeature struct{}

func (failingFeature) Name() string { return "boom" }

func (failingFeature) Load(_ context.Context, router fiber.Router, mount loader.Mount) error {
	router.Get("/", func(c *fiber.Ctx) error { return errors.New("secret detail") })
	router.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	return nil
}

func newRegistry() *loader.Manager {
	mgr := loader.NewManager()
	mgr.Register(health.NewFeature())
	mgr.Register(failingFeature{})
	return mgr
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func testConfig(entry string, mode launcher.Mode, port int) launcher.Config {
	return launcher.Config{EntryPoint: entry, Mode: mode, Host: "127.0.0.1", Port: port, Driver: "builtin"}
}

func TestBuiltin_ServeAndShutdown(t *testing.T) {
	cfg := testConfig("health", launcher.Development, freePort(t))
	srv := NewBuiltin(newRegistry(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, cfg, func() { close(ready) })
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("serve returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server never became ready")
	}

	for _, path := range []string{"/", HealthPath} {
		resp, err := http.Get("http://" + cfg.Addr() + path)
		require.NoError(t, err)
		var body health.Status
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, health.Status{Status: "ok", Mode: "development", EntryPoint: "health"}, body)
		assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestBuiltin_CancelledBeforeBind(t *testing.T) {
	cfg := testConfig("health", launcher.Development, freePort(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewBuiltin(newRegistry(), zap.NewNop()).Serve(ctx, cfg, func() {
		t.Fatal("ready must not be called")
	})
	assert.NoError(t, err)

	ln, err := net.Listen("tcp", cfg.Addr())
	require.NoError(t, err, "port should still be free")
	ln.Close()
}

func TestBuiltin_CancelDuringStartup(t *testing.T) {
	for i := 0; i < 20; i++ {
		cfg := testConfig("health", launcher.Production, freePort(t))
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- NewBuiltin(newRegistry(), zap.NewNop()).Serve(ctx, cfg, cancel)
		}()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatalf("attempt %d: server did not stop after cancellation", i)
		}
	}
}

func TestBuiltin_PortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig("health", launcher.Development, busy.Addr().(*net.TCPAddr).Port)
	readyCalled := false

	err = NewBuiltin(newRegistry(), zap.NewNop()).Serve(context.Background(), cfg, func() { readyCalled = true })
	assert.Error(t, err)
	assert.False(t, readyCalled)
}

func TestBuiltin_UnknownEntryPointBindsNothing(t *testing.T) {
	cfg := testConfig("nope", launcher.Development, freePort(t))

	err := NewBuiltin(newRegistry(), zap.NewNop()).Serve(context.Background(), cfg, func() {
		t.Fatal("ready must not be called")
	})
	assert.ErrorIs(t, err, loader.ErrUnknownEntryPoint)

	ln, err := net.Listen("tcp", cfg.Addr())
	require.NoError(t, err, "port should still be free")
	ln.Close()
}

func TestBuiltin_InvalidAllowList(t *testing.T) {
	cfg := testConfig("health", launcher.Development, freePort(t))
	cfg.AllowFrom = []string{"bogus"}

	err := NewBuiltin(newRegistry(), zap.NewNop()).Serve(context.Background(), cfg, func() {
		t.Fatal("ready must not be called")
	})
	assert.Error(t, err)
}

func TestBuiltin_ErrorBodies(t *testing.T) {
	tests := []struct {
		name string
		mode launcher.Mode
		path string
		code int
		want string
	}{
		{"DevelopmentShowsDetail", launcher.Development, "/", 500, "secret detail"},
		{"ProductionHidesDetail", launcher.Production, "/", 500, "Internal Server Error"},
		{"DevelopmentFiberError", launcher.Development, "/teapot", 418, "short and stout"},
		{"ProductionFiberError", launcher.Production, "/teapot", 418, "I'm a teapot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewBuiltin(newRegistry(), zap.NewNop()).newApp(context.Background(), testConfig("boom", tt.mode, 8000))
			require.NoError(t, err)

			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestBuiltin_DocsOnlyInDevelopment(t *testing.T) {
	tests := []struct {
		name string
		mode launcher.Mode
		code int
	}{
		{"Development", launcher.Development, 200},
		{"Production", launcher.Production, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewBuiltin(newRegistry(), zap.NewNop()).newApp(context.Background(), testConfig("health", tt.mode, 8000))
			require.NoError(t, err)

			resp, err := app.Test(httptest.NewRequest("GET", DocsPath+"/doc.json", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			if tt.code == 200 {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), HealthPath)
			}
		})
	}
}

func TestBuiltin_AllowList(t *testing.T) {
	cfg := testConfig("health", launcher.Production, 8000)
	cfg.AllowFrom = []string{"10.0.0.0/8"}

	app, err := NewBuiltin(newRegistry(), zap.NewNop()).newApp(context.Background(), cfg)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", HealthPath, nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("GET", HealthPath, nil)
	req.Header.Set("X-Forwarded-For", "10.9.8.7")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
}

func TestNewFactory(t *testing.T) {
	factory := NewFactory(newRegistry(), zap.NewNop())

	srv, err := factory(launcher.Config{Driver: "builtin"})
	require.NoError(t, err)
	assert.IsType(t, &Builtin{}, srv)

	srv, err = factory(launcher.Config{Driver: "exec"})
	require.NoError(t, err)
	assert.IsType(t, &Exec{}, srv)

	_, err = factory(launcher.Config{Driver: "docker"})
	assert.Error(t, err)
}
