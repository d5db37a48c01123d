package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCmd_WritesReport(t *testing.T) {
	seed := int64(11)
	output := filepath.Join(t.TempDir(), "report.json")
	cmd := &SimulateCmd{
		Rounds:  50,
		Players: 2,
		Agent:   "mixed",
		Seed:    &seed,
		Decks:   2,
		Bet:     10,
		Balance: 500,
		Output:  output,
	}
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var report struct {
		Seed    int64 `json:"seed"`
		Decks   int   `json:"decks"`
		Players []struct {
			Name  string `json:"name"`
			Agent string `json:"agent"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, seed, report.Seed)
	assert.Equal(t, 2, report.Decks)
	require.Len(t, report.Players, 2)
	assert.Equal(t, "dealer", report.Players[0].Agent)
	assert.Equal(t, "stand", report.Players[1].Agent)
}

func TestSimulateCmd_RejectsBadTable(t *testing.T) {
	assert.Error(t, (&SimulateCmd{Rounds: 1, Players: 5, Decks: 6, Agent: "dealer"}).Run())
	assert.Error(t, (&SimulateCmd{Rounds: 1, Players: 1, Decks: 9, Agent: "dealer"}).Run())
}
