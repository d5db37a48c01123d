package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult is one player's outcome for a single blackjack round
type RoundResult struct {
	Net          int // Chips won or lost over the round, insurance included
	InsuranceNet int // Part of Net that came from insurance
	Wagered      int // Sum of final hand wagers (doubles included, insurance excluded)
	Hands        int // Hands settled (more than one after splits)

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int // Naturals paid 3:2
	Busts      int
	Doubles    int
}

// Statistics accumulates per-round results for one player
type Statistics struct {
	Rounds int
	SumNet float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	// Ledger: every chip of Net comes from either hands or insurance
	HandNet      int
	InsuranceNet int
	AllNet       int

	Wagered int

	// Hand outcome counters
	HandsPlayed int
	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Busts       int
	Doubles     int

	BiggestWin  int
	BiggestLoss int
}

// Mean returns the arithmetic mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	s.AllNet += result.Net
	s.InsuranceNet += result.InsuranceNet
	s.HandNet += result.Net - result.InsuranceNet
	s.Wagered += result.Wagered

	s.HandsPlayed += result.Hands
	s.Wins += result.Wins
	s.Losses += result.Losses
	s.Pushes += result.Pushes
	s.Blackjacks += result.Blackjacks
	s.Busts += result.Busts
	s.Doubles += result.Doubles

	if result.Net > s.BiggestWin {
		s.BiggestWin = result.Net
	}
	if result.Net < s.BiggestLoss {
		s.BiggestLoss = result.Net
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ReturnPerWager returns the player's net as a fraction of the chips wagered
func (s *Statistics) ReturnPerWager() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.AllNet) / float64(s.Wagered)
}

// WinRate returns the fraction of hands won, naturals included
func (s *Statistics) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(s.HandsPlayed)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return s.AllNet == s.HandNet+s.InsuranceNet && math.Abs(float64(s.AllNet)-s.SumNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%d, HandNet=%d, InsuranceNet=%d, SumNet=%.0f",
			s.AllNet, s.HandNet, s.InsuranceNet, s.SumNet)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	outcomes := s.Wins + s.Losses + s.Pushes + s.Blackjacks + s.Busts
	if outcomes != s.HandsPlayed {
		return fmt.Errorf("outcome total (%d) does not match hands played (%d)", outcomes, s.HandsPlayed)
	}

	if s.Doubles > s.HandsPlayed {
		return fmt.Errorf("doubles (%d) exceed hands played (%d)", s.Doubles, s.HandsPlayed)
	}

	return nil
}
