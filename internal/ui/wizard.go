// Package ui holds the interactive replay setup form.
package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

// Title renders the wizard banner.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Hint renders secondary wizard text.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// ReplayAnswers are the values collected by the replay setup form.
type ReplayAnswers struct {
	Input   string
	Address string
	Port    int
	Proto   string
	Family  string
	Verbose bool
}

type replayFormValues struct {
	input   string
	address string
	port    string
	proto   string
	family  string
	verbose bool
}

func buildReplayForm(values *replayFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Capture file").
				Description("Path to a pcap/pcapng with NetFlow/IPFIX packets.").
				Key("input").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a capture file is required")
					}
					return nil
				}).
				Value(&values.input),
			huh.NewInput().
				Title("Collector address").
				Description("Destination IP address or hostname.").
				Key("address").
				Value(&values.address),
			huh.NewInput().
				Title("Collector port").
				Description("Destination port number (default 4739).").
				Key("port").
				Validate(validatePort).
				Value(&values.port),
			huh.NewSelect[string]().
				Title("Outbound transport").
				Description("Protocol used for every new Transport Session.").
				Key("proto").
				Options(
					huh.NewOption("UDP", "UDP"),
					huh.NewOption("TCP", "TCP"),
				).
				Value(&values.proto),
			huh.NewSelect[string]().
				Title("Address family").
				Description("Restrict collector address resolution.").
				Key("family").
				Options(
					huh.NewOption("Any", "any"),
					huh.NewOption("IPv4 only", "ipv4"),
					huh.NewOption("IPv6 only", "ipv6"),
				).
				Value(&values.family),
			huh.NewConfirm().
				Title("Verbose output").
				Key("verbose").
				Value(&values.verbose),
		),
	)
}

func validatePort(s string) error {
	num, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s is not a number", s)
	}
	if num <= 0 || num >= 1<<16 {
		return fmt.Errorf("%s is not valid port number", s)
	}
	return nil
}

// RunReplayForm collects replay settings interactively.
func RunReplayForm() (ReplayAnswers, error) {
	values := replayFormValues{
		address: "127.0.0.1",
		port:    "4739",
		proto:   "UDP",
		family:  "any",
	}
	if err := buildReplayForm(&values).Run(); err != nil {
		return ReplayAnswers{}, err
	}
	port, err := strconv.Atoi(values.port)
	if err != nil {
		return ReplayAnswers{}, fmt.Errorf("invalid port %q", values.port)
	}
	return ReplayAnswers{
		Input:   values.input,
		Address: values.address,
		Port:    port,
		Proto:   values.proto,
		Family:  values.family,
		Verbose: values.verbose,
	}, nil
}
