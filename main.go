package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/slardar/uptest/constants"
	"github.com/slardar/uptest/framework"
	"github.com/slardar/uptest/lifecycle"
	"github.com/slardar/uptest/logging"
	"github.com/slardar/uptest/uptests"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var common commonParams
	root := &cobra.Command{
		Use:          "uptest",
		Short:        "Integration test harness for the slardar service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := common.validate(); err != nil {
				return err
			}
			switch common.color {
			case "always":
				color.NoColor = false
			case "never":
				color.NoColor = true
			default:
				color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
			}
			return nil
		},
	}
	common.bind(root)

	root.AddCommand(
		newRunCommand(&common),
		newUpCommand(&common),
		newDownCommand(&common),
		newReloadCommand(&common),
		newCommandsCommand(),
		newConstantsCommand(&common),
	)
	return root
}

func newRunCommand(common *commonParams) *cobra.Command {
	var params runParams
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bring up a fresh service instance and run the test suite against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := common.paths()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var mainDebugLogger logging.Logger = logging.NullLogger()
			if params.debugAll {
				mainDebugLogger = log.New(out, "", log.LstdFlags)
			}

			harness, err := framework.NewTestHarness(
				cmd.Context(),
				framework.HarnessParams{
					Paths:          p,
					ServiceURL:     params.serviceURL,
					ConstantSource: common.constantSource(p),
					Timeout:        params.timeout,
				},
				mainDebugLogger,
				out,
			)
			if err != nil {
				return fmt.Errorf("test harness setup failed: %w", err)
			}
			if params.stopServiceAtEnd {
				defer func() {
					if err := harness.StopService(context.Background()); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Could not stop service instance: %s\n", err)
					}
				}()
			}

			fmt.Fprintf(out, "Service version %s\n\n", harness.Constants().Version)
			ordering := params.ordering()
			framework.PrintFilterDescription(out, params.filters, ordering)

			fmt.Fprintln(out, "Running test suite")
			testLogger := &ConsoleTestLogger{
				Out:                  out,
				DebugOutputOnFailure: params.debug || params.debugAll,
				DebugOutputOnSuccess: params.debugAll,
			}
			results := uptests.RunTestSuite(harness, params.filters.AsFilter, testLogger, ordering)

			fmt.Fprintln(out)
			framework.PrintResults(out, results)
			if !results.OK() {
				return fmt.Errorf("%d test(s) failed", len(results.Failures))
			}
			return nil
		},
	}
	params.bind(cmd)
	return cmd
}

func newUpCommand(common *commonParams) *cobra.Command {
	var serviceURL string
	var timeout = lifecycle.DefaultTimeout
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Stop any running instance, assemble a fresh server root and start the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := common.paths()
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			instance := lifecycle.NewServiceInstance(p.Root, lifecycle.DefaultLayout(), nil, logger)
			ctx := cmd.Context()
			for _, op := range []func(context.Context) error{instance.Stop, instance.Assemble, instance.Start} {
				if err := op(ctx); err != nil {
					return err
				}
			}
			return lifecycle.AwaitReachable(ctx, serviceURL, timeout, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&serviceURL, "url", defaultServiceURL, "base URL of the service instance")
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "how long to wait for the service instance to become reachable")
	return cmd
}

func newDownCommand(common *commonParams) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Stop any running service instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := common.paths()
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			return lifecycle.NewServiceInstance(p.Root, lifecycle.DefaultLayout(), nil, logger).Stop(cmd.Context())
		},
	}
}

// newReloadCommand runs the reload command directly. The instance was started by another
// process, so there is no instance state here to check it against.
func newReloadCommand(common *commonParams) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Tell the running service instance to reload its configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := common.paths()
			if err != nil {
				return err
			}
			runner := lifecycle.ShellRunner{Logger: log.New(cmd.ErrOrStderr(), "", log.LstdFlags)}
			return runner.Run(cmd.Context(), p.Root, lifecycle.DefaultLayout().Commands().Reload)
		},
	}
}

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Print the lifecycle shell commands and paths, for use by other tooling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			layout := lifecycle.DefaultLayout()
			for _, c := range layout.Commands().Named() {
				fmt.Fprintf(out, "%s: %s\n", c.Name, c.Command)
			}
			fmt.Fprintf(out, "log: %s\n", layout.LogPath())
			fmt.Fprintf(out, "config: %s\n", layout.ConfigPath())
			fmt.Fprintf(out, "timeout: %d\n", int(lifecycle.DefaultTimeout.Seconds()))
			return nil
		},
	}
}

func newConstantsCommand(common *commonParams) *cobra.Command {
	var writeManifest string
	cmd := &cobra.Command{
		Use:   "constants",
		Short: "Print the service version and error constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := common.paths()
			if err != nil {
				return err
			}
			c, err := common.constantSource(p).Load()
			if err != nil {
				return err
			}
			if writeManifest != "" {
				f, err := os.Create(writeManifest)
				if err != nil {
					return err
				}
				if err := constants.WriteManifest(f, c); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", c.Version)
			for _, name := range c.Errors.Names() {
				fmt.Fprintf(out, "%s = %d\n", name, c.Errors.Lookup(name).IntValue())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&writeManifest, "write-manifest", "", "write the constants to this file as a YAML manifest")
	return cmd
}
