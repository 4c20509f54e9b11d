// Package capture reads stored packet captures one frame at a time.
package capture

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// Reader produces decoded frames from a capture file in capture order.
type Reader struct {
	handle *pcap.Handle
	source *gopacket.PacketSource
}

// OpenFile opens a pcap/pcapng file for sequential reading.
func OpenFile(path string) (*Reader, error) {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap: %w", err)
	}
	return &Reader{
		handle: handle,
		source: gopacket.NewPacketSource(handle, handle.LinkType()),
	}, nil
}

// Next returns the next decoded frame, or io.EOF when the capture is
// exhausted. Decoding is lazy; the caller drives the pace.
func (r *Reader) Next() (gopacket.Packet, error) {
	return r.source.NextPacket()
}

// Close releases the underlying capture handle.
func (r *Reader) Close() {
	r.handle.Close()
}
