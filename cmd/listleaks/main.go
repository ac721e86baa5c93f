// Command listleaks runs a List scenario with a leak tracker attached and reports every node that
// was allocated and never freed.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bradenaw/linked"
	"github.com/bradenaw/linked/leak"
)

var errLeaks = errors.New("memory leaks found")

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	config := DefaultConfig()
	var configFile string

	cmd := &cobra.Command{
		Use:          "listleaks",
		Short:        "Push values onto a List and check that every node is freed",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configFile != "" {
				fileConfig := DefaultConfig()
				if err := fileConfig.ReadConfig(configFile); err != nil {
					return err
				}
				// Flags given explicitly win over the file.
				flags := cmd.Flags()
				if !flags.Changed("count") {
					config.Count = fileConfig.Count
				}
				if !flags.Changed("verbose") {
					config.Verbose = fileConfig.Verbose
				}
				if !flags.Changed("leak") {
					config.Leak = fileConfig.Leak
				}
			}
			if err := config.Validate(); err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), config)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML config file")
	flags.IntVarP(&config.Count, "count", "n", config.Count, "number of values to push")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "log every node allocation and free")
	flags.BoolVar(&config.Leak, "leak", false, "do not close the list before reporting")
	return cmd
}

func run(stdout io.Writer, stderr io.Writer, config *Config) error {
	tracker := leak.NewTracker()
	var observer linked.Observer = tracker
	if config.Verbose {
		log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		observer = leak.Tee(tracker, leak.Logger(log))
	}

	if err := pushFront(stdout, config, observer); err != nil {
		return err
	}

	report := tracker.Report()
	if len(report.Leaked) == 0 {
		fmt.Fprintln(stdout, "No memory leaks found")
		return nil
	}
	fmt.Fprintf(stderr, "%d memory leaks found.\n", len(report.Leaked))
	for _, id := range report.Leaked {
		fmt.Fprintln(stderr, id)
	}
	return errLeaks
}

func pushFront(w io.Writer, config *Config, observer linked.Observer) error {
	l := linked.New(linked.WithObserver[int](observer))
	if !config.Leak {
		defer l.Close()
	}

	for i := 0; i < config.Count; i++ {
		if err := l.PushFront(i); err != nil {
			return err
		}
	}

	it := l.All()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		fmt.Fprint(w, v, " ")
	}
	fmt.Fprintln(w)
	return nil
}
