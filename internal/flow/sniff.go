package flow

import "encoding/binary"

// Version is the flow-export protocol identified by the leading
// big-endian version marker of the payload. The payload is never
// parsed beyond those two bytes.
type Version uint16

const (
	VersionNetFlow5 Version = 5
	VersionNetFlow9 Version = 9
	VersionIPFIX    Version = 10
)

func (v Version) String() string {
	switch v {
	case VersionNetFlow5:
		return "NetFlow v5"
	case VersionNetFlow9:
		return "NetFlow v9"
	case VersionIPFIX:
		return "IPFIX"
	}
	return "unrecognized"
}

// Sniff classifies the transport payload by its version marker. The
// returned skip reason is SkipNone when the payload starts with a
// known NetFlow/IPFIX version.
func Sniff(payload []byte) (Version, SkipReason) {
	if len(payload) < 2 {
		return 0, SkipShortPayload
	}
	version := Version(binary.BigEndian.Uint16(payload[:2]))
	switch version {
	case VersionNetFlow5, VersionNetFlow9, VersionIPFIX:
		return version, SkipNone
	}
	return version, SkipUnknownVersion
}
