package dashboard

import "context"

// Counter is anything that can report how many items it holds.
type Counter interface {
	Len() int
}

// CounterFunc adapts a plain function to Counter.
type CounterFunc func() int

func (f CounterFunc) Len() int { return f() }

// Refresher re-fetches a cache from the backend.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Stats aggregates the dashboard counters from the display caches. Counts
// derive from cache lengths; nothing is counted twice or fetched separately.
type Stats struct {
	files        Counter
	appointments Counter
	records      Counter
	users        Counter
}

func NewStats(files, appointments, records, users Counter) *Stats {
	return &Stats{
		files:        files,
		appointments: appointments,
		records:      records,
		users:        users,
	}
}

// Counts is one snapshot of the four dashboard numbers.
type Counts struct {
	Files        int
	Appointments int
	Records      int
	Users        int
}

func (s *Stats) Counts() Counts {
	return Counts{
		Files:        count(s.files),
		Appointments: count(s.appointments),
		Records:      count(s.records),
		Users:        count(s.users),
	}
}

func count(c Counter) int {
	if c == nil {
		return 0
	}
	return c.Len()
}
