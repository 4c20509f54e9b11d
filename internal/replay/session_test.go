package replay

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jkalina/flowreplay/internal/flow"
	"github.com/jkalina/flowreplay/internal/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(logging.LogLevelSilent, "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

// pipeRegistry returns a registry whose sessions connect to in-memory
// pipes, with a drain goroutine per connection so writes never block.
func pipeRegistry(t *testing.T, target Target) *Registry {
	t.Helper()
	registry := NewRegistry(target, testLogger(t))
	registry.dial = func(ctx context.Context, target Target) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			buf := make([]byte, 1024)
			for {
				if _, err := server.Read(buf); err != nil {
					return
				}
			}
		}()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	return registry
}

func TestGetOrCreateReusesSession(t *testing.T) {
	registry := pipeRegistry(t, Target{Addr: "127.0.0.1", Port: 4739, Proto: flow.ProtocolUDP})
	defer registry.CloseAll()

	tuple := flow.FiveTuple{SrcIP: "10.0.0.1", DstIP: "10.0.0.2", Proto: flow.ProtocolUDP, SrcPort: 1000, DstPort: 2055}
	first, err := registry.GetOrCreate(context.Background(), tuple)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	second, err := registry.GetOrCreate(context.Background(), tuple)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if first != second {
		t.Fatal("expected the same session for the same tuple")
	}
	if registry.Created() != 1 {
		t.Fatalf("created = %d, want 1", registry.Created())
	}
}

func TestGetOrCreateDistinctTuples(t *testing.T) {
	registry := pipeRegistry(t, Target{Addr: "127.0.0.1", Port: 4739, Proto: flow.ProtocolUDP})
	defer registry.CloseAll()

	base := flow.FiveTuple{SrcIP: "10.0.0.1", DstIP: "10.0.0.2", Proto: flow.ProtocolUDP, SrcPort: 1000, DstPort: 2055}
	other := base
	other.SrcPort = 1001

	a, err := registry.GetOrCreate(context.Background(), base)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	b, err := registry.GetOrCreate(context.Background(), other)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct sessions for distinct tuples")
	}
	if registry.Created() != 2 {
		t.Fatalf("created = %d, want 2", registry.Created())
	}
}

func TestGetOrCreateFailureLeavesNoState(t *testing.T) {
	registry := pipeRegistry(t, Target{Addr: "127.0.0.1", Port: 4739, Proto: flow.ProtocolUDP})
	defer registry.CloseAll()

	fail := true
	realDial := registry.dial
	registry.dial = func(ctx context.Context, target Target) (net.Conn, error) {
		if fail {
			return nil, fmt.Errorf("connection refused")
		}
		return realDial(ctx, target)
	}

	tuple := flow.FiveTuple{SrcIP: "10.0.0.1", DstIP: "10.0.0.2", Proto: flow.ProtocolUDP, SrcPort: 1000, DstPort: 2055}
	if _, err := registry.GetOrCreate(context.Background(), tuple); err == nil {
		t.Fatal("expected dial error")
	}
	if registry.Created() != 0 {
		t.Fatalf("created = %d after failure, want 0", registry.Created())
	}

	// The tuple stays unknown, so the next attempt dials again
	fail = false
	if _, err := registry.GetOrCreate(context.Background(), tuple); err != nil {
		t.Fatalf("GetOrCreate after recovery: %v", err)
	}
	if registry.Created() != 1 {
		t.Fatalf("created = %d, want 1", registry.Created())
	}
}

func TestProtocolMismatchWarning(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "replay.log")
	log, err := logging.NewLogger(logging.LogLevelError, logPath)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer log.Close()

	registry := NewRegistry(Target{Addr: "127.0.0.1", Port: 4739, Proto: flow.ProtocolTCP}, log)
	registry.dial = func(ctx context.Context, target Target) (net.Conn, error) {
		client, server := net.Pipe()
		t.Cleanup(func() { server.Close() })
		return client, nil
	}
	defer registry.CloseAll()

	tuple := flow.FiveTuple{SrcIP: "10.0.0.1", DstIP: "10.0.0.2", Proto: flow.ProtocolUDP, SrcPort: 1000, DstPort: 2055}
	if _, err := registry.GetOrCreate(context.Background(), tuple); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	// Second frame of the same tuple must not warn again
	if _, err := registry.GetOrCreate(context.Background(), tuple); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "WARNING: Original flow packets exported over UDP") {
		t.Fatalf("expected mismatch warning in log, got:\n%s", content)
	}
	if strings.Count(content, "WARNING:") != 1 {
		t.Fatalf("expected exactly one warning, got:\n%s", content)
	}
}

func TestStatsSummary(t *testing.T) {
	stats := Stats{FramesTotal: 3, FramesSent: 3, SessionsCreated: 1}
	want := "3 of 3 packets have been processed and sent over 1 Transport Session(s)!"
	if got := stats.Summary(); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
