package uptests

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/slardar/uptest/constants"
	"github.com/slardar/uptest/fixtures"
	"github.com/slardar/uptest/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the service test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. To make assertions, use the assert and require packages,
// passing the *T as if it were a *testing.T. Many of the request methods have assertions
// built in and end the test immediately if something unexpected happens.
type T struct {
	context  *framework.Context
	harness  *framework.TestHarness
	deferred []func()
}

// TestCase is a named test for RunGroup.
type TestCase struct {
	Name   string
	Action func(*T)
}

func newTestScope(context *framework.Context, harness *framework.TestHarness) *T {
	return &T{context: context, harness: harness}
}

func (t *T) close() {
	for i := len(t.deferred) - 1; i >= 0; i-- {
		t.deferred[i]()
	}
	t.deferred = nil
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		t1 := newTestScope(c, t.harness)
		defer t1.close()
		action(t1)
	})
}

// RunGroup runs subtests whose order does not matter. They are shuffled if the test run uses
// random ordering.
func (t *T) RunGroup(cases ...TestCase) {
	var fcs []framework.Case
	for _, tc := range cases {
		action := tc.Action
		fcs = append(fcs, framework.Case{
			Name: tc.Name,
			Action: func(c *framework.Context) {
				t1 := newTestScope(c, t.harness)
				defer t1.close()
				action(t1)
			},
		})
	}
	t.context.RunGroup(fcs)
}

// Defer schedules cleanup to run when this test ends, in reverse order of scheduling.
func (t *T) Defer(fn func()) {
	t.deferred = append(t.deferred, fn)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Version() string {
	return t.harness.Constants().Version
}

func (t *T) Errors() constants.ErrorTable {
	return t.harness.Constants().Errors
}

// Errno looks up an error constant. The result is empty if there is no such constant.
func (t *T) Errno(name string) ldvalue.OptionalInt {
	return t.Errors().Lookup(name)
}

// RequireErrno returns the code for an error constant, failing the test if there is no such
// constant.
func (t *T) RequireErrno(name string) int {
	code := t.Errno(name)
	if !code.IsDefined() {
		require.Fail(t, "unknown error constant", "the service does not define %s", name)
	}
	return code.IntValue()
}

// Fixture returns the content of a file in the fixtures directory, failing the test if it
// cannot be read.
func (t *T) Fixture(name string) []byte {
	data, err := t.harness.Fixtures().Load(name)
	require.NoError(t, err)
	return data
}

// Request sends a request to the service instance, failing the test if there is no response.
func (t *T) Request(r framework.ServiceRequest) framework.ServiceResponse {
	resp, err := t.harness.Do(context.Background(), r, t.context.DebugLogger())
	require.NoError(t, err)
	return resp
}

// Get is a shortcut for a GET Request.
func (t *T) Get(path string) framework.ServiceResponse {
	return t.Request(framework.ServiceRequest{Method: http.MethodGet, Path: path})
}

func (t *T) RequireStatus(resp framework.ServiceResponse, status int) {
	require.Equal(t, status, resp.Status, "unexpected HTTP status; body was: %s", truncate(resp.Body))
}

// RequireBodyDigest checks the response body against a recorded digest.
func (t *T) RequireBodyDigest(resp framework.ServiceResponse, digest string) {
	assert.Equal(t, digest, fixtures.BodyDigest(resp.Body, resp), "response body digest")
}

// RequireFixtureBody checks that the response body is identical to a fixture file.
func (t *T) RequireFixtureBody(resp framework.ServiceResponse, fixtureName string) {
	expected := fixtures.Digest(t.Fixture(fixtureName))
	assert.Equal(t, expected, fixtures.Digest(resp.Body),
		"response body does not match fixture %q (%d bytes received)", fixtureName, len(resp.Body))
}

// ErrorLog returns the current content of the instance's error log.
func (t *T) ErrorLog() string {
	data, err := os.ReadFile(t.harness.Instance().LogPath())
	require.NoError(t, err)
	return string(data)
}

// EditConfig rewrites the instance's live configuration file and reloads the instance. The
// original file is restored, and the instance reloaded again, when the test ends.
//
// All tests share one instance, so tests that call EditConfig must not overlap.
func (t *T) EditConfig(edit func(string) string) {
	path := t.harness.Instance().ConfigPath()
	info, err := os.Stat(path)
	require.NoError(t, err)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	t.Defer(func() {
		if err := os.WriteFile(path, original, info.Mode()); err != nil {
			t.Errorf("could not restore configuration: %s", err)
			return
		}
		if err := t.harness.ReloadService(context.Background()); err != nil {
			t.Errorf("reload after restoring configuration failed: %s", err)
		}
	})

	require.NoError(t, os.WriteFile(path, []byte(edit(string(original))), info.Mode()))
	t.Debug("Rewrote %s, reloading", path)
	require.NoError(t, t.harness.ReloadService(context.Background()))
}

func truncate(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return fmt.Sprintf("%s... (%d bytes)", body[:max], len(body))
}
