package simulator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/fileutil"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// AgentMixed seats a rotating mix of every bot kind
const AgentMixed = "mixed"

// Config holds configuration for running simulations
type Config struct {
	Rounds          int
	Players         int
	Agent           string
	Seed            int64
	Rules           game.Rules
	StartingBalance int
	BetUnit         int
	Logger          *log.Logger
}

// PlayerReport is the outcome of a simulation for one seat
type PlayerReport struct {
	Name    string                 `json:"name"`
	Agent   string                 `json:"agent"`
	Start   int                    `json:"start"`
	Final   int                    `json:"final"`
	Rounds  int                    `json:"rounds"`
	Summary Summary                `json:"summary"`
	Stats   *statistics.Statistics `json:"-"`
}

// Summary is the exported view of a player's statistics
type Summary struct {
	MeanNet        float64    `json:"mean_net"`
	MedianNet      float64    `json:"median_net"`
	StdDev         float64    `json:"std_dev"`
	CI95           [2]float64 `json:"ci95"`
	ReturnPerWager float64    `json:"return_per_wager"`
	WinRate        float64    `json:"win_rate"`
	Hands          int        `json:"hands"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Pushes         int        `json:"pushes"`
	Blackjacks     int        `json:"blackjacks"`
	Busts          int        `json:"busts"`
	Doubles        int        `json:"doubles"`
	InsuranceNet   int        `json:"insurance_net"`
	BiggestWin     int        `json:"biggest_win"`
	BiggestLoss    int        `json:"biggest_loss"`
}

// Report contains the results of a simulation run
type Report struct {
	Seed         int64          `json:"seed"`
	Agent        string         `json:"agent"`
	Decks        int            `json:"decks"`
	RoundsPlayed int            `json:"rounds_played"`
	Shuffles     int            `json:"shuffles"`
	HouseNet     int            `json:"house_net"`
	Players      []PlayerReport `json:"players"`
}

// Simulator runs automated blackjack rounds
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Players <= 0 {
		config.Players = 1
	}
	if config.StartingBalance <= 0 {
		config.StartingBalance = 500
	}
	if config.BetUnit <= 0 {
		config.BetUnit = config.Rules.MinBet
	}
	return &Simulator{config: config}
}

// Run plays up to Rounds rounds, stopping early once nobody can cover the
// minimum bet, and returns validated per-player statistics.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	rng := deck.NewRand(s.config.Seed)
	rules := s.config.Rules
	rules.DealerDelay = 0

	engine := game.NewEngine(s.config.Logger, game.WithDealerDelay(0))
	table := game.NewTable(rules, rng, engine, s.config.Logger)

	report := &Report{Seed: s.config.Seed, Agent: s.config.Agent, Decks: rules.Decks}
	stats := make(map[string]*statistics.Statistics, s.config.Players)

	for i := 0; i < s.config.Players; i++ {
		kind := s.agentKind(i)
		agent, err := bot.New(kind, bot.Options{BetUnit: s.config.BetUnit, RNG: rng, Logger: s.config.Logger})
		if err != nil {
			return nil, err
		}

		name := fmt.Sprintf("%s-%d", kind, i+1)
		if err := table.AddPlayer(game.NewPlayer(name, s.config.StartingBalance), agent); err != nil {
			return nil, err
		}
		stats[name] = &statistics.Statistics{}
		report.Players = append(report.Players, PlayerReport{Name: name, Agent: kind, Start: s.config.StartingBalance})
	}

	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(table.EligiblePlayers()) == 0 {
			s.config.Logger.Info("No eligible players left", "round", round)
			break
		}

		result, err := table.PlayRound(ctx)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		for name, rr := range Summarise(result) {
			stats[name].Add(rr)
		}
		report.HouseNet += result.HouseNet()
	}

	report.RoundsPlayed = table.Rounds()
	report.Shuffles = table.Shuffles()

	balances := table.Balances()
	for i := range report.Players {
		pr := &report.Players[i]
		st := stats[pr.Name]
		pr.Final = balances[pr.Name]
		pr.Rounds = st.Rounds
		pr.Stats = st
		pr.Summary = summarize(st)

		if st.Rounds == 0 {
			continue
		}
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", pr.Name, err)
		}
		if pr.Start+st.AllNet != pr.Final {
			return nil, fmt.Errorf("%s: balance %d does not match start %d plus net %d", pr.Name, pr.Final, pr.Start, st.AllNet)
		}
	}

	return report, nil
}

func (s *Simulator) agentKind(seat int) string {
	if s.config.Agent == AgentMixed {
		return bot.Kinds[seat%len(bot.Kinds)]
	}
	return s.config.Agent
}

// Summarise converts a round's ledger into per-player statistics results
func Summarise(result *game.RoundResult) map[string]statistics.RoundResult {
	out := make(map[string]statistics.RoundResult, len(result.Players))
	for _, pr := range result.Players {
		rr := statistics.RoundResult{Net: pr.Net()}
		for _, s := range result.SettlementsFor(pr.Name) {
			if s.Outcome.IsInsurance() {
				rr.InsuranceNet += s.Delta
				continue
			}
			rr.Hands++
			rr.Wagered += s.Wager
			if s.Doubled {
				rr.Doubles++
			}
			switch s.Outcome {
			case game.Win:
				rr.Wins++
			case game.Lose, game.DealerBlackjackLoss:
				rr.Losses++
			case game.Push, game.DealerBlackjackPush:
				rr.Pushes++
			case game.Blackjack:
				rr.Blackjacks++
			case game.Bust:
				rr.Busts++
			}
		}
		out[pr.Name] = rr
	}
	return out
}

func summarize(st *statistics.Statistics) Summary {
	low, high := st.ConfidenceInterval95()
	return Summary{
		MeanNet:        st.Mean(),
		MedianNet:      st.Median(),
		StdDev:         st.StdDev(),
		CI95:           [2]float64{low, high},
		ReturnPerWager: st.ReturnPerWager(),
		WinRate:        st.WinRate(),
		Hands:          st.HandsPlayed,
		Wins:           st.Wins,
		Losses:         st.Losses,
		Pushes:         st.Pushes,
		Blackjacks:     st.Blackjacks,
		Busts:          st.Busts,
		Doubles:        st.Doubles,
		InsuranceNet:   st.InsuranceNet,
		BiggestWin:     st.BiggestWin,
		BiggestLoss:    st.BiggestLoss,
	}
}

// WriteJSON exports the report atomically
func (r *Report) WriteJSON(filename string) error {
	return fileutil.WriteJSONAtomic(filename, r, 0o644)
}

// PrintSummary writes a plain-text summary of the report
func PrintSummary(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n=== SIMULATION: %d rounds, %d decks, seed %d ===\n", r.RoundsPlayed, r.Decks, r.Seed)
	fmt.Fprintf(w, "Shuffles: %d\n", r.Shuffles)
	fmt.Fprintf(w, "House net: %+d\n", r.HouseNet)

	for _, p := range r.Players {
		s := p.Summary
		fmt.Fprintf(w, "\n--- %s (%s) ---\n", p.Name, p.Agent)
		fmt.Fprintf(w, "Balance: %d -> %d (%+d) over %d rounds\n", p.Start, p.Final, p.Final-p.Start, p.Rounds)
		if p.Rounds == 0 {
			continue
		}
		fmt.Fprintf(w, "Mean: %.3f/round  Median: %.3f  Std Dev: %.3f\n", s.MeanNet, s.MedianNet, s.StdDev)
		fmt.Fprintf(w, "95%% CI: [%.3f, %.3f]/round\n", s.CI95[0], s.CI95[1])
		fmt.Fprintf(w, "Return per chip wagered: %.2f%%\n", s.ReturnPerWager*100)
		fmt.Fprintf(w, "Hands: %d  %s\n", s.Hands, strings.Join([]string{
			fmt.Sprintf("won %d", s.Wins),
			fmt.Sprintf("lost %d", s.Losses),
			fmt.Sprintf("pushed %d", s.Pushes),
			fmt.Sprintf("blackjack %d", s.Blackjacks),
			fmt.Sprintf("bust %d", s.Busts),
			fmt.Sprintf("doubled %d", s.Doubles),
		}, ", "))
		fmt.Fprintf(w, "Insurance net: %+d  Best round: %+d  Worst round: %+d\n", s.InsuranceNet, s.BiggestWin, s.BiggestLoss)
	}
}
