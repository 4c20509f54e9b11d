package replay

import "fmt"

// Stats are the summary counters of one replay run.
type Stats struct {
	FramesTotal     int
	FramesSent      int
	SessionsCreated int
}

// Summary renders the end-of-run report line.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d of %d packets have been processed and sent over %d Transport Session(s)!",
		s.FramesSent, s.FramesTotal, s.SessionsCreated)
}
