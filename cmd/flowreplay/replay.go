package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkalina/flowreplay/internal/app"
	"github.com/jkalina/flowreplay/internal/config"
	"github.com/jkalina/flowreplay/internal/flow"
	"github.com/jkalina/flowreplay/internal/replay"
)

type replayFlags struct {
	input      string
	dest       string
	port       int
	proto      string
	verbose    bool
	ipv4Only   bool
	ipv6Only   bool
	configPath string
	logFile    string
}

func newReplayCmd() *cobra.Command {
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay flow-export packets from a capture to a collector",
		Long: `Replay NetFlow v5/v9 and IPFIX packets from a capture file.

Each original transport session (5-tuple) in the capture gets its own
outbound connection, so the collector sees the flows as independent
sessions in their original order.`,
		Example: `  # Replay to a local collector over UDP (defaults)
  flowreplay replay -i flows.pcap

  # Replay to a remote collector over TCP, IPv4 addresses only
  flowreplay replay -i flows.pcap -d collector.example.com -p 4739 -t TCP -4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.input == "" {
				return fmt.Errorf("required flag --input not set")
			}
			opts, err := buildReplayOptions(cmd, flags)
			if err != nil {
				return err
			}
			_, err = app.RunReplay(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Capture file with NetFlow/IPFIX packets (required)")
	cmd.Flags().StringVarP(&flags.dest, "dest", "d", "127.0.0.1", "Destination IP address or hostname")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 4739, "Destination port number")
	cmd.Flags().StringVarP(&flags.proto, "proto", "t", "UDP", "Outbound transport protocol: UDP|TCP")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Increase verbosity")
	cmd.Flags().BoolVarP(&flags.ipv4Only, "ipv4-only", "4", false, "Send flows to an IPv4 address only")
	cmd.Flags().BoolVarP(&flags.ipv6Only, "ipv6-only", "6", false, "Send flows to an IPv6 address only")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Optional YAML config with replay defaults")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Optional log file")
	cmd.MarkFlagsMutuallyExclusive("ipv4-only", "ipv6-only")

	return cmd
}

// buildReplayOptions merges config-file defaults with the flags; a
// flag set on the command line always wins.
func buildReplayOptions(cmd *cobra.Command, flags *replayFlags) (app.ReplayOptions, error) {
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return app.ReplayOptions{}, err
		}
		cfg = loaded
	}

	dest := cfg.Destination.Address
	if cmd.Flags().Changed("dest") {
		dest = flags.dest
	}
	port := cfg.Destination.Port
	if cmd.Flags().Changed("port") {
		port = flags.port
	}
	protoName := cfg.Destination.Protocol
	if cmd.Flags().Changed("proto") {
		protoName = flags.proto
	}
	proto, err := flow.ParseProtocol(protoName)
	if err != nil {
		return app.ReplayOptions{}, err
	}

	family, err := replay.ParseFamily(cfg.Destination.Family)
	if err != nil {
		return app.ReplayOptions{}, err
	}
	if flags.ipv4Only {
		family = replay.FamilyIPv4
	}
	if flags.ipv6Only {
		family = replay.FamilyIPv6
	}

	logFile := cfg.Replay.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile = flags.logFile
	}

	return app.ReplayOptions{
		Input: flags.input,
		Target: replay.Target{
			Addr:   dest,
			Port:   port,
			Proto:  proto,
			Family: family,
		},
		Verbose: flags.verbose || cfg.Replay.Verbose,
		LogFile: logFile,
	}, nil
}
