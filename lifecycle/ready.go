package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	readinessPollInterval = time.Millisecond * 100
	readinessQueryTimeout = time.Second
)

// ErrNotReachable means the instance did not answer within the timeout.
var ErrNotReachable = errors.New("service instance did not become reachable")

// AwaitReachable polls url until the server gives any HTTP response at all, or until timeout
// has elapsed. Progress dots are written to output, which may be nil.
func AwaitReachable(ctx context.Context, url string, timeout time.Duration, output io.Writer) error {
	if output == nil {
		output = io.Discard
	}
	client := &http.Client{Timeout: readinessQueryTimeout}

	fmt.Fprintf(output, "Waiting for service instance at %s", url)
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			fmt.Fprintln(output)
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			fmt.Fprintln(output)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("%w within %s, result of last query was: %s", ErrNotReachable, timeout, err)
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return ctx.Err()
		case <-time.After(readinessPollInterval):
		}
	}
}
