package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Styles contains styling for the console
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Hidden    lipgloss.Style
	Player    lipgloss.Style
	Dealer    lipgloss.Style
	Money     lipgloss.Style
}

// NewStyles creates styles rendered for w. With color disabled every style
// renders plain text.
func NewStyles(w io.Writer, color bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Dealer: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Money: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
	}
}

// Card renders a single card in brackets, red suits in red
func (s *Styles) Card(c deck.Card) string {
	text := "[" + c.String() + "]"
	if c.IsRed() {
		return s.CardRed.Render(text)
	}
	return s.CardBlack.Render(text)
}

// Cards renders cards side by side
func (s *Styles) Cards(cards []deck.Card) string {
	out := ""
	for _, c := range cards {
		out += s.Card(c)
	}
	return out
}

// HiddenCard renders the dealer's face-down card
func (s *Styles) HiddenCard() string {
	return s.Hidden.Render("[??]")
}
