package engine

import (
	"reflect"
	"testing"

	"gem-game/entities"
)

var testNames = []string{"Ann", "Bo", "Cy", "Di"}

func newTestGame(t *testing.T, playerCount int, opts ...Option) *Game {
	t.Helper()
	g, err := New(append([]Option{WithSeed(5)}, opts...)...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := g.Initialize(playerCount, testNames[:playerCount], false); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	return g
}

func testCard(id int, level entities.Level, gem entities.GemType, points int, cost map[entities.GemType]int) entities.Card {
	return entities.Card{
		ID:     id,
		Level:  level,
		Points: points,
		Gem:    gem,
		Cost:   entities.NewGems(cost),
	}
}

func testNoble(id int, req map[entities.GemType]int) entities.Noble {
	return entities.Noble{ID: id, Points: 3, Requirements: entities.NewGems(req)}
}

// bonusCards 生成 n 张指定颜色、0 分的已购买卡牌
func bonusCards(startID int, gem entities.GemType, n int) []entities.Card {
	cards := make([]entities.Card, n)
	for i := range cards {
		cards[i] = testCard(startID+i, entities.Level1, gem, 0, nil)
	}
	return cards
}

// giveGems 从宝石池转给玩家，保持守恒
func giveGems(t *testing.T, g *Game, player int, gems map[entities.GemType]int) {
	t.Helper()
	delta := entities.NewGems(gems)
	if !g.state.bank.Covers(delta) {
		t.Fatalf("bank %v cannot cover %v", g.state.bank, delta)
	}
	g.state.bank = g.state.bank.Sub(delta)
	g.state.players[player].Gems = g.state.players[player].Gems.Add(delta)
}

func assertUnchanged(t *testing.T, g *Game, before state) {
	t.Helper()
	if after := g.state.clone(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed after rejected operation\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func assertConserved(t *testing.T, g *Game, playerCount int) {
	t.Helper()
	want, _ := InitialBank(playerCount)
	if got := g.Totals(); got != want {
		t.Fatalf("gem totals = %v, want %v", got, want)
	}
}
