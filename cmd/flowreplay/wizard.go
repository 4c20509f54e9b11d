package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkalina/flowreplay/internal/app"
	"github.com/jkalina/flowreplay/internal/flow"
	"github.com/jkalina/flowreplay/internal/replay"
	"github.com/jkalina/flowreplay/internal/ui"
)

func newWizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Set up and run a replay interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stdout, ui.Title("flowreplay setup"))
			fmt.Fprintln(os.Stdout, ui.Hint("Answer the prompts to replay a capture to a collector."))

			answers, err := ui.RunReplayForm()
			if err != nil {
				return err
			}
			proto, err := flow.ParseProtocol(answers.Proto)
			if err != nil {
				return err
			}
			family, err := replay.ParseFamily(answers.Family)
			if err != nil {
				return err
			}

			_, err = app.RunReplay(cmd.Context(), app.ReplayOptions{
				Input: answers.Input,
				Target: replay.Target{
					Addr:   answers.Address,
					Port:   answers.Port,
					Proto:  proto,
					Family: family,
				},
				Verbose: answers.Verbose,
			})
			return err
		},
	}
}
