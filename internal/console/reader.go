package console

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrQuit is returned when the player closes input or interrupts a prompt
var ErrQuit = errors.New("player quit")

// LineReader reads a line of input after showing a prompt
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// NewReadline creates an interactive line reader with history and tab
// completion of the action words.
func NewReadline(historyFile string) (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter()
	for _, c := range choices {
		completer.Children = append(completer.Children, readline.PcItem(c.words[len(c.words)-1]))
	}
	completer.Children = append(completer.Children, readline.PcItem("yes"), readline.PcItem("end"))

	return readline.NewEx(&readline.Config{
		HistoryFile:       historyFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "end",
		HistorySearchFold: true,
	})
}

// ask shows prompt and returns the trimmed answer. Interrupts and closed
// input become ErrQuit.
func ask(in LineReader, prompt string) (string, error) {
	in.SetPrompt(prompt)
	line, err := in.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrQuit
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
