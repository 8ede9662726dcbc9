package pipeline

import (
	"time"

	"github.com/backmassage/audioconvert/internal/convert"
)

// Result is the outcome of one conversion job.
type Result struct {
	Job         convert.Job
	Err         error
	Skipped     bool // Not started because the run was cancelled.
	Elapsed     time.Duration
	InputBytes  int64
	OutputBytes int64
}

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	RunID            string
	Total            int
	Converted        int
	Failed           int
	Skipped          int
	Renamed          int
	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration
	Results          []Result
}

// OK reports whether the run finished with no failed or skipped jobs.
func (s *RunStats) OK() bool { return s.Failed == 0 && s.Skipped == 0 }

// SizeDelta returns the aggregate byte difference between outputs and
// inputs. Negative means outputs are smaller.
func (s *RunStats) SizeDelta() int64 {
	return s.TotalOutputBytes - s.TotalInputBytes
}

func (s *RunStats) add(r Result) {
	s.Results = append(s.Results, r)
	switch {
	case r.Skipped:
		s.Skipped++
	case r.Err != nil:
		s.Failed++
	default:
		s.Converted++
		s.TotalInputBytes += r.InputBytes
		s.TotalOutputBytes += r.OutputBytes
	}
}
