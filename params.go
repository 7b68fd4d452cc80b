package main

import (
	"fmt"
	"time"

	"github.com/slardar/uptest/constants"
	"github.com/slardar/uptest/framework"
	"github.com/slardar/uptest/lifecycle"
	"github.com/slardar/uptest/paths"

	"github.com/spf13/cobra"
)

const defaultServiceURL = "http://localhost:8080"

// commonParams are accepted by every subcommand.
type commonParams struct {
	root     string
	manifest string
	color    string
}

func (c *commonParams) bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&c.root, "root", "", "harness root directory (default: current directory)")
	fs.StringVar(&c.manifest, "manifest", "", "read service constants from this YAML manifest instead of the Lua sources")
	fs.StringVar(&c.color, "color", "auto", "colorize output: auto, always or never")
}

func (c *commonParams) paths() (paths.Paths, error) {
	if c.root == "" {
		return paths.FromWorkingDir()
	}
	return paths.New(c.root)
}

func (c *commonParams) constantSource(p paths.Paths) constants.ConstantSource {
	if c.manifest != "" {
		return constants.ManifestSource{Path: c.manifest}
	}
	return constants.NewSourceScraper(p)
}

func (c *commonParams) validate() error {
	switch c.color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("invalid --color value %q", c.color)
	}
}

type runParams struct {
	serviceURL       string
	filters          framework.RegexFilters
	randomOrder      bool
	seed             int64
	timeout          time.Duration
	stopServiceAtEnd bool
	debug            bool
	debugAll         bool
}

func (r *runParams) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&r.serviceURL, "url", defaultServiceURL, "base URL of the service instance")
	fs.Var(&r.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&r.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&r.randomOrder, "random-order", true, "run tests in random order")
	fs.Int64Var(&r.seed, "seed", 0, "random ordering seed (default: from the clock)")
	fs.DurationVar(&r.timeout, "timeout", lifecycle.DefaultTimeout, "how long to wait for the service instance to become reachable or answer a request")
	fs.BoolVar(&r.stopServiceAtEnd, "stop-service-at-end", false, "stop the service instance after the test run")
	fs.BoolVar(&r.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&r.debugAll, "debug-all", false, "enable debug logging for all tests")
}

func (r *runParams) ordering() framework.Ordering {
	if r.randomOrder {
		return framework.RandomOrdering(r.seed)
	}
	return framework.DeclaredOrdering()
}
