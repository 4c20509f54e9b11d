package flow

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// SkipReason explains why a frame did not advance to forwarding.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipNoIPLayer
	SkipNoTransportLayer
	SkipShortPayload
	SkipUnknownVersion
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "Not skipped"
	case SkipNoIPLayer:
		return "Unable to locate L3 layer"
	case SkipNoTransportLayer:
		return "Failed to locate L4 layer"
	case SkipShortPayload:
		return "Payload too short for a version marker"
	case SkipUnknownVersion:
		return "Payload doesn't contain NetFlow/IPFIX packet"
	}
	return "Unknown"
}

// Result is the outcome of classifying a single frame: either a tuple
// with its transport payload, or a skip reason.
type Result struct {
	Tuple   FiveTuple
	Payload []byte
	Skip    SkipReason
}

// Classified reports whether the frame carries an IP + UDP/TCP payload.
func (r Result) Classified() bool {
	return r.Skip == SkipNone
}

// Classify extracts the 5-tuple and transport payload from one frame.
// It is a pure function of the frame bytes: no side effects, same
// frame always yields the same result. UDP is checked before TCP,
// matching the exporter protocols this tool replays.
func Classify(pkt gopacket.Packet) Result {
	var srcIP, dstIP string
	if ip4Layer := pkt.Layer(layers.LayerTypeIPv4); ip4Layer != nil {
		ip4 := ip4Layer.(*layers.IPv4)
		srcIP = ip4.SrcIP.String()
		dstIP = ip4.DstIP.String()
	} else if ip6Layer := pkt.Layer(layers.LayerTypeIPv6); ip6Layer != nil {
		ip6 := ip6Layer.(*layers.IPv6)
		srcIP = ip6.SrcIP.String()
		dstIP = ip6.DstIP.String()
	} else {
		return Result{Skip: SkipNoIPLayer}
	}

	if udpLayer := pkt.Layer(layers.LayerTypeUDP); udpLayer != nil {
		udp := udpLayer.(*layers.UDP)
		return Result{
			Tuple: FiveTuple{
				SrcIP:   srcIP,
				DstIP:   dstIP,
				Proto:   ProtocolUDP,
				SrcPort: uint16(udp.SrcPort),
				DstPort: uint16(udp.DstPort),
			},
			Payload: udp.Payload,
		}
	}
	if tcpLayer := pkt.Layer(layers.LayerTypeTCP); tcpLayer != nil {
		tcp := tcpLayer.(*layers.TCP)
		return Result{
			Tuple: FiveTuple{
				SrcIP:   srcIP,
				DstIP:   dstIP,
				Proto:   ProtocolTCP,
				SrcPort: uint16(tcp.SrcPort),
				DstPort: uint16(tcp.DstPort),
			},
			Payload: tcp.Payload,
		}
	}
	return Result{Skip: SkipNoTransportLayer}
}
