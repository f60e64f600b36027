// Command armnn-profile runs and inspects the external profiling
// service described by this module. Structured around Cobra
// subcommands the way alexandrem-coral's agent CLI is, replacing the
// teacher's hand-rolled flag.FlagSet dispatch (cmd/aegis-edge/main.go)
// with a Cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	armnn "github.com/ghaddam/armnn"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "armnn-profile",
		Short: "External profiling session driver",
	}
	root.AddCommand(newServeCommand(), newValidateCommand(), newInspectCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var cfgPath string
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the profiling session until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := armnn.Conf(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return session.Run(ctx, tick)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "./data/config.yaml", "Path to profiling service configuration file")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Interval between session driver steps")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a config file without starting a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := armnn.LoadConfig(cfgPath); err != nil {
				return err
			}
			fmt.Printf("config %s is valid\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "./data/config.yaml", "Path to configuration file to validate")
	return cmd
}

func newInspectCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build a session and print its initial state",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := armnn.Conf(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			svc, err := session.StreamOUT()
			if err != nil {
				return fmt.Errorf("build service: %w", err)
			}
			fmt.Printf("initial state: %s\n", svc.CurrentState())
			fmt.Printf("enable_profiling: %v\n", svc.EnableProfiling())
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "./data/config.yaml", "Path to profiling service configuration file")
	return cmd
}
