package framework

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/slardar/uptest/logging"
)

// ServiceResponse is a fully read HTTP response from the service instance.
type ServiceResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// ServiceRequest describes a request to send to the service instance. Path is relative to the
// service's base URL.
type ServiceRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Do sends a request to the service instance and reads the whole response. The request fails
// if the instance does not respond within the harness timeout.
func (h *TestHarness) Do(ctx context.Context, r ServiceRequest, logger logging.Logger) (ServiceResponse, error) {
	if logger == nil {
		logger = h.logger
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	url := strings.TrimSuffix(h.serviceURL, "/") + "/" + strings.TrimPrefix(r.Path, "/")

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return ServiceResponse{}, err
	}
	for k, vv := range r.Header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	logger.Printf("Sending %s %s", method, url)
	resp, err := h.client.Do(req)
	if err != nil {
		return ServiceResponse{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ServiceResponse{}, fmt.Errorf("error reading response body from %s: %w", url, err)
	}
	logger.Printf("Received HTTP %d, %d bytes", resp.StatusCode, len(data))
	return ServiceResponse{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
