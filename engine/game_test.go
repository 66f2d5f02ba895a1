package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"gem-game/entities"
)

func TestInitializeTwoPlayers(t *testing.T) {
	g := newTestGame(t, 2)

	want := entities.Gems{4, 4, 4, 4, 4, 5}
	if g.Bank() != want {
		t.Fatalf("bank = %v, want %v", g.Bank(), want)
	}
	for i := 0; i < 2; i++ {
		p, err := g.Player(i)
		if err != nil {
			t.Fatalf("Player(%d) returned error: %v", i, err)
		}
		if p.Gems != (entities.Gems{}) {
			t.Fatalf("player %d starts with gems %v", i, p.Gems)
		}
		if p.Name != testNames[i] || p.ID != i {
			t.Fatalf("player %d = %+v", i, p)
		}
	}

	snap := g.Snapshot()
	for i, row := range snap.VisibleCards {
		if len(row) != VisibleCardsPerLevel {
			t.Fatalf("level %d shows %d cards, want %d", i+1, len(row), VisibleCardsPerLevel)
		}
		for _, c := range row {
			if c.Level != entities.Levels[i] {
				t.Fatalf("level %d row contains card of level %d", i+1, c.Level)
			}
		}
	}
	if snap.DeckSizes != [entities.NumLevels]int{36, 26, 16} {
		t.Fatalf("deck sizes = %v", snap.DeckSizes)
	}
	if len(snap.Nobles) != 3 {
		t.Fatalf("expected 3 nobles, got %d", len(snap.Nobles))
	}
	if snap.IsGameOver || snap.Winner != nil || snap.CurrentPlayer != 0 {
		t.Fatalf("unexpected initial turn state: %+v", snap)
	}
}

func TestInitializeBankByPlayerCount(t *testing.T) {
	tcs := []struct {
		players int
		bank    entities.Gems
	}{
		{2, entities.Gems{4, 4, 4, 4, 4, 5}},
		{3, entities.Gems{5, 5, 5, 5, 5, 5}},
		{4, entities.Gems{7, 7, 7, 7, 7, 5}},
	}
	for _, tc := range tcs {
		g := newTestGame(t, tc.players)
		if g.Bank() != tc.bank {
			t.Fatalf("%d players: bank = %v, want %v", tc.players, g.Bank(), tc.bank)
		}
		if got := len(g.Snapshot().Nobles); got != tc.players+1 {
			t.Fatalf("%d players: %d nobles, want %d", tc.players, got, tc.players+1)
		}
	}
}

func TestInitializeRejectsBadInput(t *testing.T) {
	g, err := New(WithSeed(1))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := g.Initialize(1, []string{"solo"}, false); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("Initialize(1) error = %v, want %v", err, ErrInvalidPlayerCount)
	}
	if err := g.Initialize(5, []string{"a", "b", "c", "d", "e"}, false); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("Initialize(5) error = %v, want %v", err, ErrInvalidPlayerCount)
	}
	if err := g.Initialize(3, []string{"a", "b"}, false); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("Initialize with 2 names for 3 players error = %v", err)
	}
}

func TestOperationsBeforeInitialize(t *testing.T) {
	g, err := New(WithSeed(1))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := g.TakeGems(entities.NewGems(map[entities.GemType]int{entities.Ruby: 1})); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("TakeGems error = %v, want %v", err, ErrNotInitialized)
	}
	if err := g.EndTurn(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("EndTurn error = %v, want %v", err, ErrNotInitialized)
	}
}

func TestInitializeIsReproducibleWithSeed(t *testing.T) {
	first := newTestGame(t, 3).Snapshot()
	second := newTestGame(t, 3).Snapshot()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed produced different opening boards")
	}
}

func TestRestartResetsState(t *testing.T) {
	g := newTestGame(t, 2)
	if err := g.TakeGems(entities.NewGems(map[entities.GemType]int{entities.Ruby: 1, entities.Onyx: 1})); err != nil {
		t.Fatalf("TakeGems returned error: %v", err)
	}
	if err := g.EndTurn(); err != nil {
		t.Fatalf("EndTurn returned error: %v", err)
	}

	if err := g.Initialize(2, []string{"X", "Y"}, false); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	snap := g.Snapshot()
	if snap.CurrentPlayer != 0 || snap.Bank != (entities.Gems{4, 4, 4, 4, 4, 5}) {
		t.Fatalf("restart did not reset board: %+v", snap)
	}
	if snap.Players[0].Gems.Total() != 0 || snap.Players[0].Name != "X" {
		t.Fatalf("restart did not reset players: %+v", snap.Players[0])
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(t, 2)
	snap := g.Snapshot()
	snap.Players[0].Gems[entities.Ruby] = 9
	snap.VisibleCards[0][0].Points = 99
	snap.Nobles = nil

	fresh := g.Snapshot()
	if fresh.Players[0].Gems[entities.Ruby] != 0 {
		t.Fatal("snapshot shares player gems with the engine")
	}
	if fresh.VisibleCards[0][0].Points == 99 {
		t.Fatal("snapshot shares visible cards with the engine")
	}
	if len(fresh.Nobles) != 3 {
		t.Fatal("snapshot shares nobles with the engine")
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := newTestGame(t, 2)
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if raw["winner"] != nil {
		t.Fatalf("winner = %v, want null", raw["winner"])
	}
	gems, ok := raw["gems"].(map[string]any)
	if !ok || len(gems) != entities.NumGemTypes || gems["gold"] != float64(5) {
		t.Fatalf("unexpected gems encoding: %v", raw["gems"])
	}
}

func TestSnapshotJSONKeepsEmptyRowsAsArrays(t *testing.T) {
	g := newTestGame(t, 2)
	g.state.visible[2] = nil
	g.state.decks[2] = nil
	g.state.nobles = nil

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if nobles, ok := raw["nobles"].([]any); !ok || len(nobles) != 0 {
		t.Fatalf("nobles = %v, want []", raw["nobles"])
	}
	rows, ok := raw["visibleCards"].([]any)
	if !ok || len(rows) != entities.NumLevels {
		t.Fatalf("unexpected visibleCards encoding: %v", raw["visibleCards"])
	}
	if row, ok := rows[2].([]any); !ok || len(row) != 0 {
		t.Fatalf("level 3 row = %v, want []", rows[2])
	}
}
