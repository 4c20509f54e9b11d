// Package flow classifies captured frames into flow-export payloads
// keyed by their original transport session.
package flow

import (
	"fmt"
	"strings"
)

// Protocol is the transport protocol of a flow-export session.
type Protocol string

const (
	ProtocolUDP Protocol = "UDP"
	ProtocolTCP Protocol = "TCP"
)

// Network returns the net package network name for the protocol.
func (p Protocol) Network() string {
	if p == ProtocolTCP {
		return "tcp"
	}
	return "udp"
}

// ParseProtocol parses a protocol name as used on the command line.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToUpper(s) {
	case "UDP":
		return ProtocolUDP, nil
	case "TCP":
		return ProtocolTCP, nil
	}
	return "", fmt.Errorf("unknown transport protocol %q; use UDP or TCP", s)
}

// FiveTuple identifies one original transport session observed in the
// capture. It is the key into the session registry, so two frames with
// equal tuples always share an outbound connection.
type FiveTuple struct {
	SrcIP   string
	DstIP   string
	Proto   Protocol
	SrcPort uint16
	DstPort uint16
}

func (t FiveTuple) String() string {
	return fmt.Sprintf("%s %s:%d -> %s:%d", t.Proto, t.SrcIP, t.SrcPort, t.DstIP, t.DstPort)
}
