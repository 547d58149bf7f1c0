package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/launch"
	"github.com/viant/launch/policy"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configURL string
		baseURL   string
		traceFile string
		tracing   bool
		dryRun    bool
	)
	rootCmd := &cobra.Command{
		Use:           "launch",
		Short:         "Run launch descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configURL, "config", "c", "", "Service configuration URL")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base", "", "Base URL for relative launch files")
	rootCmd.PersistentFlags().BoolVar(&tracing, "trace", false, "Enable OpenTelemetry tracing")
	rootCmd.PersistentFlags().StringVar(&traceFile, "trace-file", "", "Write traces to file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Visit the launch description without starting processes")

	newService := func(ctx context.Context, arguments map[string]string) (*launch.Service, error) {
		config := launch.DefaultConfig()
		if configURL != "" {
			var err error
			if config, err = launch.LoadConfig(ctx, configURL); err != nil {
				return nil, err
			}
		}
		if tracing {
			config.Tracing.Enabled = true
			config.Tracing.OutputFile = traceFile
		}
		if dryRun {
			config.Policy = &policy.Config{Mode: policy.ModeDeny}
		}
		return launch.New(
			launch.WithConfig(config),
			launch.WithBaseURL(baseURL),
			launch.WithLaunchConfigurations(arguments))
	}

	runCmd := &cobra.Command{
		Use:   "run FILE [name:=value ...]",
		Short: "Run a launch file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseArguments(args[1:])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			srv, err := newService(ctx, arguments)
			if err != nil {
				return err
			}
			if err = srv.IncludeFile(args[0]); err != nil {
				return err
			}
			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)
			go func() {
				for sig := range signals {
					if err := srv.Shutdown(fmt.Sprintf("received %v", sig), sig == os.Interrupt); err != nil {
						fmt.Fprintf(os.Stderr, "failed to shutdown: %v\n", err)
					}
				}
			}()
			return srv.Run(ctx)
		},
	}

	describeCmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Print launch file entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			srv, err := newService(ctx, nil)
			if err != nil {
				return err
			}
			tree, err := srv.Describe(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tree)
			return err
		},
	}

	rootCmd.AddCommand(runCmd, describeCmd)
	return rootCmd
}

// parseArguments parses name:=value launch arguments
func parseArguments(args []string) (map[string]string, error) {
	ret := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, ":=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid launch argument '%s', expected name:=value", arg)
		}
		ret[name] = value
	}
	return ret, nil
}
