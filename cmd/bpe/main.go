package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := newCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bpe failed %v\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bpe",
		Short:         "Byte pair encoding compressor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addFlags(cmd.PersistentFlags())

	subcommands := []struct {
		use   string
		short string
		run   func(a *app, cmd *cobra.Command, args []string) error
	}{
		{"compress FILE...", "Compress files into FILE<suffix>", func(a *app, cmd *cobra.Command, args []string) error {
			return a.compress(cmd.Context(), args)
		}},
		{"decompress FILE...", "Restore files compressed by compress", func(a *app, cmd *cobra.Command, args []string) error {
			return a.decompress(cmd.Context(), args)
		}},
		{"inspect FILE...", "Print the pair assignments compress would use", func(a *app, cmd *cobra.Command, args []string) error {
			return a.inspect(cmd.Context(), args)
		}},
		{"bench FILE...", "Compare compression ratios against zstd", func(a *app, cmd *cobra.Command, args []string) error {
			return a.bench(cmd.Context(), args)
		}},
	}
	for _, sub := range subcommands {
		run := sub.run
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := newViper(cmd.Flags())
				if err != nil {
					return err
				}
				config, err := getConfig(v)
				if err != nil {
					return err
				}
				a, err := newApp(config, stdout, stderr)
				if err != nil {
					return err
				}
				defer a.close()
				return run(a, cmd, args)
			},
		})
	}
	return cmd
}
