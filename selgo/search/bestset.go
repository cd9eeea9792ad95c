package search

import (
	"sync"

	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

// Verdict is the outcome of offering a candidate to a BestSet.
type Verdict uint8

const (
	// Appended means the candidate was added to the set.
	Appended Verdict = iota
	// Superseded means the set already holds a better result; the offerer should adopt it.
	Superseded
	// Equal means the set's last entry has the same selector.
	Equal
	// Full means the set reached its capacity and accepts nothing more.
	Full
)

func (v Verdict) String() string {
	switch v {
	case Appended:
		return "appended"
	case Superseded:
		return "superseded"
	case Equal:
		return "equal"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Outcome describes the set as observed inside the critical section of an offer.
type Outcome struct {
	Verdict Verdict
	// Last is the last entry after the offer; zero if the set is empty.
	Last  selector.Result
	Count int
}

// BestSet is the ordered collection of accepted results shared by all workers of a search.
// Under ImproveOnly the selectors of the entries strictly decrease in insertion order.
type BestSet struct {
	mu      sync.Mutex
	max     int
	results []selector.Result
}

func NewBestSet(max int) *BestSet {
	return &BestSet{max: max, results: make([]selector.Result, 0, max)}
}

// Offer reads the current optimum and conditionally appends r in a single critical section.
func (s *BestSet) Offer(r selector.Result, obj Objective) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.results)
	if n >= s.max {
		out := Outcome{Verdict: Full, Count: n}
		if n > 0 {
			out.Last = s.results[n-1]
		}
		return out
	}
	if obj == ImproveOnly && n > 0 {
		last := s.results[n-1]
		switch {
		case last.Selector < r.Selector:
			return Outcome{Verdict: Superseded, Last: last, Count: n}
		case last.Selector == r.Selector:
			return Outcome{Verdict: Equal, Last: last, Count: n}
		}
	}
	s.results = append(s.results, r)
	return Outcome{Verdict: Appended, Last: r, Count: n + 1}
}

func (s *BestSet) Last() (selector.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return selector.Result{}, false
	}
	return s.results[len(s.results)-1], true
}

func (s *BestSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

func (s *BestSet) Cap() int {
	return s.max
}

// Results returns a copy of the entries in insertion order.
func (s *BestSet) Results() []selector.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]selector.Result, len(s.results))
	copy(out, s.results)
	return out
}
