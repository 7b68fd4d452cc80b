package framework

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/slardar/uptest/constants"
	"github.com/slardar/uptest/fixtures"
	"github.com/slardar/uptest/lifecycle"
	"github.com/slardar/uptest/logging"
	"github.com/slardar/uptest/paths"
)

// HarnessParams configures NewTestHarness. Zero-valued optional fields get defaults.
type HarnessParams struct {
	Paths      paths.Paths
	ServiceURL string

	// ConstantSource defaults to scraping the service's sources under Paths.Root.
	ConstantSource constants.ConstantSource

	// Layout defaults to lifecycle.DefaultLayout().
	Layout *lifecycle.Layout

	// Runner defaults to a lifecycle.ShellRunner.
	Runner lifecycle.Runner

	// Timeout bounds how long to wait for the instance to become reachable after starting or
	// reloading it, and how long any single request to it may take. Defaults to
	// lifecycle.DefaultTimeout.
	Timeout time.Duration
}

// TestHarness holds everything the tests share: the constants, the fixtures and the running
// service instance.
type TestHarness struct {
	serviceURL string
	paths      paths.Paths
	constants  constants.Constants
	fixtures   fixtures.Loader
	instance   *lifecycle.ServiceInstance
	timeout    time.Duration
	client     *http.Client
	logger     logging.Logger
}

// NewTestHarness loads the service's constants and brings up a fresh service instance,
// returning once the instance answers requests. Any failure here means no test can run.
func NewTestHarness(
	ctx context.Context,
	params HarnessParams,
	debugLogger logging.Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = logging.NullLogger()
	}
	if startupOutput == nil {
		startupOutput = io.Discard
	}

	h := &TestHarness{
		serviceURL: params.ServiceURL,
		paths:      params.Paths,
		fixtures:   fixtures.NewLoader(params.Paths.Fixtures),
		timeout:    params.Timeout,
		logger:     debugLogger,
	}
	if h.timeout <= 0 {
		h.timeout = lifecycle.DefaultTimeout
	}
	h.client = &http.Client{Timeout: h.timeout}

	source := params.ConstantSource
	if source == nil {
		source = constants.NewSourceScraper(params.Paths)
	}
	c, err := source.Load()
	if err != nil {
		return nil, err
	}
	h.constants = c
	debugLogger.Printf("Service version %s, %d error constants", c.Version, c.Errors.Len())

	layout := lifecycle.DefaultLayout()
	if params.Layout != nil {
		layout = *params.Layout
	}
	h.instance = lifecycle.NewServiceInstance(params.Paths.Root, layout, params.Runner,
		logging.WithPrefix(debugLogger, "[lifecycle] "))

	if err := h.instance.Stop(ctx); err != nil {
		return nil, err
	}
	if err := h.instance.Assemble(ctx); err != nil {
		return nil, err
	}
	if err := h.instance.Start(ctx); err != nil {
		return nil, err
	}
	if err := lifecycle.AwaitReachable(ctx, h.serviceURL, h.timeout, startupOutput); err != nil {
		// nobody else holds a reference to the instance, so it has to be stopped here
		if stopErr := h.instance.Stop(context.Background()); stopErr != nil {
			debugLogger.Printf("Could not stop unreachable service instance: %s", stopErr)
		}
		return nil, err
	}
	return h, nil
}

func (h *TestHarness) ServiceURL() string { return h.serviceURL }

func (h *TestHarness) Paths() paths.Paths { return h.paths }

func (h *TestHarness) Constants() constants.Constants { return h.constants }

func (h *TestHarness) Fixtures() fixtures.Loader { return h.fixtures }

func (h *TestHarness) Instance() *lifecycle.ServiceInstance { return h.instance }

func (h *TestHarness) Timeout() time.Duration { return h.timeout }

// ReloadService tells the instance to reread its configuration and waits until it answers
// requests again.
func (h *TestHarness) ReloadService(ctx context.Context) error {
	if err := h.instance.Reload(ctx); err != nil {
		return err
	}
	return lifecycle.AwaitReachable(ctx, h.serviceURL, h.timeout, nil)
}

// StopService stops the service instance.
func (h *TestHarness) StopService(ctx context.Context) error {
	return h.instance.Stop(ctx)
}
