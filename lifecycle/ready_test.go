package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitReachableAcceptsAnyStatus(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(404))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var out bytes.Buffer
		require.NoError(t, AwaitReachable(context.Background(), server.URL, time.Second, &out))
		assert.Equal(t, 1, len(requestsCh))
		assert.Contains(t, out.String(), "Waiting for service instance at "+server.URL)
	})
}

func unusedAddress(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestAwaitReachableTimesOut(t *testing.T) {
	url := "http://" + unusedAddress(t)
	started := time.Now()
	err := AwaitReachable(context.Background(), url, time.Millisecond*300, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotReachable))
	assert.GreaterOrEqual(t, int64(time.Since(started)), int64(time.Millisecond*300))
}

func TestAwaitReachableWaitsForLateServer(t *testing.T) {
	addr := unusedAddress(t)
	server := &http.Server{Addr: addr, Handler: httphelpers.HandlerWithStatus(200)}
	go func() {
		time.Sleep(time.Millisecond * 300)
		_ = server.ListenAndServe()
	}()
	defer server.Close()

	require.NoError(t, AwaitReachable(context.Background(), "http://"+addr, time.Second*5, nil))
}

func TestAwaitReachableStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := AwaitReachable(ctx, "http://"+unusedAddress(t), time.Second*5, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAwaitReachableBadURL(t *testing.T) {
	assert.Error(t, AwaitReachable(context.Background(), "http://bad host\x7f", time.Second, nil))
}
