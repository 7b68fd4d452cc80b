package framework

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/slardar/uptest/constants"
	"github.com/slardar/uptest/lifecycle"
	"github.com/slardar/uptest/paths"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	commands []string
	fail     error
}

func (f *fakeRunner) Run(ctx context.Context, dir, command string) error {
	f.commands = append(f.commands, command)
	return f.fail
}

func makeHarnessRoot(t *testing.T) paths.Paths {
	p, err := paths.New(t.TempDir())
	require.NoError(t, err)
	writeTestFile(t, p.InitSource(), "slardar.global.version = \"1.14.2\"\n")
	writeTestFile(t, p.ErrnoSource(), "INVALID_PARAMS = {1001, \"bad request\"},\n")
	writeTestFile(t, filepath.Join(p.Fixtures, "body.txt"), "expected body")
	return p
}

func writeTestFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewTestHarness(t *testing.T) {
	p := makeHarnessRoot(t)
	runner := &fakeRunner{}
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		h, err := NewTestHarness(context.Background(), HarnessParams{
			Paths:      p,
			ServiceURL: server.URL,
			Runner:     runner,
		}, nil, nil)
		require.NoError(t, err)

		c := h.Instance().Commands()
		assert.Equal(t, []string{c.Stop, c.Assemble, c.Start}, runner.commands)
		assert.Equal(t, lifecycle.Running, h.Instance().State())
		assert.Equal(t, "1.14", h.Constants().Version)
		assert.Equal(t, 1001, h.Constants().Errors.Lookup("INVALID_PARAMS").IntValue())
		assert.Equal(t, lifecycle.DefaultTimeout, h.Timeout())

		body, err := h.Fixtures().LoadString("body.txt")
		require.NoError(t, err)
		assert.Equal(t, "expected body", body)

		require.NoError(t, h.ReloadService(context.Background()))
		assert.Equal(t, c.Reload, runner.commands[3])

		require.NoError(t, h.StopService(context.Background()))
		assert.Equal(t, lifecycle.Stopped, h.Instance().State())
	})
}

func TestNewTestHarnessFailsOnMissingVersion(t *testing.T) {
	p := makeHarnessRoot(t)
	writeTestFile(t, p.InitSource(), "-- no version\n")
	runner := &fakeRunner{}

	_, err := NewTestHarness(context.Background(), HarnessParams{
		Paths:      p,
		ServiceURL: "http://localhost:1",
		Runner:     runner,
	}, nil, nil)
	assert.True(t, errors.Is(err, constants.ErrVersionNotFound))
	assert.Empty(t, runner.commands, "nothing should be started if constants cannot be loaded")
}

func TestNewTestHarnessFailsIfCommandsCannotRun(t *testing.T) {
	p := makeHarnessRoot(t)
	fail := errors.New("cp failed")
	runner := &fakeRunner{fail: fail}

	_, err := NewTestHarness(context.Background(), HarnessParams{
		Paths:      p,
		ServiceURL: "http://localhost:1",
		Runner:     runner,
	}, nil, nil)
	// Stop only tolerates a non-zero exit status, not a failure to run at all
	assert.True(t, errors.Is(err, fail))
}

func TestNewTestHarnessFailsIfNotReachable(t *testing.T) {
	p := makeHarnessRoot(t)
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	runner := &fakeRunner{}
	_, err := NewTestHarness(context.Background(), HarnessParams{
		Paths:      p,
		ServiceURL: url,
		Runner:     runner,
		Timeout:    time.Millisecond * 200,
	}, nil, nil)
	assert.True(t, errors.Is(err, lifecycle.ErrNotReachable))

	c := lifecycle.DefaultLayout().Commands()
	assert.Equal(t, []string{c.Stop, c.Assemble, c.Start, c.Stop}, runner.commands,
		"an instance that was started but never became reachable should be stopped again")
}

func TestNewTestHarnessWithManifest(t *testing.T) {
	p := makeHarnessRoot(t)
	manifest := filepath.Join(p.Root, "constants.yaml")
	writeTestFile(t, manifest, "version: \"2.0.0\"\nerrors:\n  SUCCESS:\n    code: 0\n")

	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		h, err := NewTestHarness(context.Background(), HarnessParams{
			Paths:          p,
			ServiceURL:     server.URL,
			ConstantSource: constants.ManifestSource{Path: manifest},
			Runner:         &fakeRunner{},
		}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "2.0", h.Constants().Version)
		assert.True(t, h.Constants().Errors.Lookup("SUCCESS").IsDefined())
		assert.False(t, h.Constants().Errors.Lookup("INVALID_PARAMS").IsDefined())
	})
}

func TestDo(t *testing.T) {
	p := makeHarnessRoot(t)
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(201, http.Header{"X-Test": []string{"yes"}}, []byte("created")))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h, err := NewTestHarness(context.Background(), HarnessParams{
			Paths:      p,
			ServiceURL: server.URL + "/",
			Runner:     &fakeRunner{},
		}, nil, nil)
		require.NoError(t, err)
		<-requestsCh // the readiness check

		resp, err := h.Do(context.Background(), ServiceRequest{
			Method: "PUT",
			Path:   "/upload/a.png",
			Header: http.Header{"Content-Type": []string{"image/png"}},
			Body:   []byte("data"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.Status)
		assert.Equal(t, "yes", resp.Header.Get("X-Test"))
		assert.Equal(t, "created", string(resp.Body))

		req := <-requestsCh
		assert.Equal(t, "PUT", req.Request.Method)
		assert.Equal(t, "/upload/a.png", req.Request.URL.Path)
		assert.Equal(t, "image/png", req.Request.Header.Get("Content-Type"))
		assert.Equal(t, "data", string(req.Body))
	})
}

func TestDoTimesOutOnHungInstance(t *testing.T) {
	p := makeHarnessRoot(t)
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/hang" {
			<-release
		}
		w.WriteHeader(200)
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		defer close(release)
		h, err := NewTestHarness(context.Background(), HarnessParams{
			Paths:      p,
			ServiceURL: server.URL,
			Runner:     &fakeRunner{},
			Timeout:    time.Millisecond * 300,
		}, nil, nil)
		require.NoError(t, err)

		started := time.Now()
		_, err = h.Do(context.Background(), ServiceRequest{Path: "/hang"}, nil)
		assert.Error(t, err)
		assert.Less(t, time.Since(started), 5*time.Second)
	})
}
