package engine

import (
	"errors"
	"testing"

	"gem-game/entities"
)

type gemMap = map[entities.GemType]int

func TestTakeThreeDifferentGems(t *testing.T) {
	g := newTestGame(t, 2)
	selection := entities.NewGems(gemMap{entities.Diamond: 1, entities.Sapphire: 1, entities.Ruby: 1})

	if err := g.TakeGems(selection); err != nil {
		t.Fatalf("TakeGems returned error: %v", err)
	}
	if want := (entities.Gems{3, 3, 4, 3, 4, 5}); g.Bank() != want {
		t.Fatalf("bank = %v, want %v", g.Bank(), want)
	}
	p, _ := g.Player(0)
	if p.Gems != selection {
		t.Fatalf("player gems = %v, want %v", p.Gems, selection)
	}
	assertConserved(t, g, 2)
}

func TestTakeTwoOfAKindNeedsFourInBank(t *testing.T) {
	g := newTestGame(t, 2)
	g.state.bank[entities.Diamond] = 3
	g.state.players[1].Gems[entities.Diamond] = 1
	before := g.state.clone()

	err := g.TakeGems(entities.NewGems(gemMap{entities.Diamond: 2}))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("TakeGems error = %v, want %v", err, ErrInvalidSelection)
	}
	assertUnchanged(t, g, before)

	if err := g.TakeGems(entities.NewGems(gemMap{entities.Emerald: 2})); err != nil {
		t.Fatalf("TakeGems two emeralds returned error: %v", err)
	}
	if g.Bank()[entities.Emerald] != 2 {
		t.Fatalf("bank emerald = %d, want 2", g.Bank()[entities.Emerald])
	}
}

func TestTakeGemsRejectsIllegalShapes(t *testing.T) {
	tcs := []struct {
		name      string
		selection gemMap
	}{
		{"empty", gemMap{}},
		{"gold", gemMap{entities.Gold: 1}},
		{"gold pair", gemMap{entities.Gold: 2}},
		{"gold with colors", gemMap{entities.Ruby: 1, entities.Gold: 1}},
		{"four colors", gemMap{entities.Diamond: 1, entities.Sapphire: 1, entities.Emerald: 1, entities.Ruby: 1}},
		{"pair plus one", gemMap{entities.Diamond: 2, entities.Ruby: 1}},
		{"two pairs", gemMap{entities.Diamond: 2, entities.Ruby: 2}},
		{"three of a kind", gemMap{entities.Onyx: 3}},
		{"negative", gemMap{entities.Onyx: -1, entities.Ruby: 1}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 4)
			before := g.state.clone()
			err := g.TakeGems(entities.NewGems(tc.selection))
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("TakeGems(%v) error = %v, want %v", tc.selection, err, ErrInvalidSelection)
			}
			assertUnchanged(t, g, before)
		})
	}
}

func TestTakeGemsRejectsEmptyBankColor(t *testing.T) {
	g := newTestGame(t, 2)
	giveGems(t, g, 1, gemMap{entities.Ruby: 4})
	before := g.state.clone()

	err := g.TakeGems(entities.NewGems(gemMap{entities.Ruby: 1, entities.Onyx: 1}))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("TakeGems error = %v, want %v", err, ErrInvalidSelection)
	}
	assertUnchanged(t, g, before)
}

func TestTakeGemsRespectsPlayerCap(t *testing.T) {
	g := newTestGame(t, 4)
	giveGems(t, g, 0, gemMap{entities.Diamond: 3, entities.Sapphire: 3, entities.Emerald: 3})
	before := g.state.clone()

	err := g.TakeGems(entities.NewGems(gemMap{entities.Ruby: 1, entities.Onyx: 1}))
	if !errors.Is(err, ErrCapExceeded) {
		t.Fatalf("TakeGems error = %v, want %v", err, ErrCapExceeded)
	}
	assertUnchanged(t, g, before)

	if err := g.TakeGems(entities.NewGems(gemMap{entities.Ruby: 1})); err != nil {
		t.Fatalf("taking up to the cap returned error: %v", err)
	}
	p, _ := g.Player(0)
	if p.Gems.Total() != entities.MaxPlayerGems {
		t.Fatalf("player holds %d gems, want %d", p.Gems.Total(), entities.MaxPlayerGems)
	}
	assertConserved(t, g, 4)
}

func TestReturnGems(t *testing.T) {
	g := newTestGame(t, 3)
	giveGems(t, g, 0, gemMap{entities.Ruby: 2, entities.Gold: 1})

	if err := g.ReturnGems(entities.NewGems(gemMap{entities.Ruby: 1, entities.Gold: 1})); err != nil {
		t.Fatalf("ReturnGems returned error: %v", err)
	}
	p, _ := g.Player(0)
	if p.Gems != entities.NewGems(gemMap{entities.Ruby: 1}) {
		t.Fatalf("player gems = %v", p.Gems)
	}
	assertConserved(t, g, 3)

	before := g.state.clone()
	err := g.ReturnGems(entities.NewGems(gemMap{entities.Ruby: 1, entities.Onyx: 1}))
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("ReturnGems more than held error = %v, want %v", err, ErrInvalidSelection)
	}
	assertUnchanged(t, g, before)

	if err := g.ReturnGems(entities.Gems{}); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("ReturnGems empty error = %v, want %v", err, ErrInvalidSelection)
	}
}

func TestOneActionPerTurn(t *testing.T) {
	g := newTestGame(t, 2, WithOneActionPerTurn(true))
	if err := g.TakeGems(entities.NewGems(gemMap{entities.Ruby: 1})); err != nil {
		t.Fatalf("first TakeGems returned error: %v", err)
	}

	before := g.state.clone()
	err := g.TakeGems(entities.NewGems(gemMap{entities.Onyx: 1}))
	if !errors.Is(err, ErrActionAlreadyTaken) {
		t.Fatalf("second TakeGems error = %v, want %v", err, ErrActionAlreadyTaken)
	}
	assertUnchanged(t, g, before)

	// 归还宝石不算行动
	if err := g.ReturnGems(entities.NewGems(gemMap{entities.Ruby: 1})); err != nil {
		t.Fatalf("ReturnGems returned error: %v", err)
	}
	if err := g.EndTurn(); err != nil {
		t.Fatalf("EndTurn returned error: %v", err)
	}
	if err := g.TakeGems(entities.NewGems(gemMap{entities.Onyx: 1})); err != nil {
		t.Fatalf("next player's TakeGems returned error: %v", err)
	}
}

func TestMultipleActionsAllowedByDefault(t *testing.T) {
	g := newTestGame(t, 2)
	for i := 0; i < 2; i++ {
		if err := g.TakeGems(entities.NewGems(gemMap{entities.Ruby: 1})); err != nil {
			t.Fatalf("TakeGems #%d returned error: %v", i+1, err)
		}
	}
}
