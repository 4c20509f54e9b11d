package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "flowreplay",
		Short: "Replay NetFlow v5/v9 and IPFIX packets to a collector",
		Long: `flowreplay reads flow-export packets from a stored capture and
re-emits their payloads to a collector, keeping one independent
outbound connection per original transport session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newSchemaHelperCmd())
	rootCmd.AddCommand(newWizardCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// An interrupt aborts the run without a diagnostic
		if errors.Is(err, context.Canceled) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
