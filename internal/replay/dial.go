package replay

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jkalina/flowreplay/internal/flow"
)

// Family restricts which address families are considered when
// resolving the collector address.
type Family int

const (
	FamilyAny Family = iota
	FamilyIPv4
	FamilyIPv6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	}
	return "any"
}

// ParseFamily parses a family filter name as used in the config file.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return FamilyAny, nil
	case "ipv4":
		return FamilyIPv4, nil
	case "ipv6":
		return FamilyIPv6, nil
	}
	return FamilyAny, fmt.Errorf("unknown address family %q; use any, ipv4 or ipv6", s)
}

// resolveNetwork maps the family filter to a resolver network name.
func (f Family) resolveNetwork() string {
	switch f {
	case FamilyIPv4:
		return "ip4"
	case FamilyIPv6:
		return "ip6"
	}
	return "ip"
}

// Target is the collector endpoint every session connects to.
type Target struct {
	Addr   string
	Port   int
	Proto  flow.Protocol
	Family Family
}

func (t Target) String() string {
	return fmt.Sprintf("%s %s", t.Proto, net.JoinHostPort(t.Addr, strconv.Itoa(t.Port)))
}

// dialTarget resolves the target and tries every candidate address in
// resolver order, connecting with the configured outbound protocol.
// The first candidate that connects wins; if none does, the last dial
// error is returned.
func dialTarget(ctx context.Context, target Target) (net.Conn, error) {
	ips, err := net.DefaultResolver.LookupIP(ctx, target.Family.resolveNetwork(), target.Addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s (%s): %w", target.Addr, target.Family, err)
	}

	var dialer net.Dialer
	var lastErr error
	for _, ip := range ips {
		addr := net.JoinHostPort(ip.String(), strconv.Itoa(target.Port))
		conn, err := dialer.DialContext(ctx, target.Proto.Network(), addr)
		if err != nil {
			lastErr = err
			continue
		}
		return conn, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("no connectable address for %s: %w", target, lastErr)
	}
	return nil, fmt.Errorf("no addresses resolved for %s (%s)", target.Addr, target.Family)
}
