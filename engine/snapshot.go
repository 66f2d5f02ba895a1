package engine

import "gem-game/entities"

// Snapshot 给渲染层读取的只读状态，和引擎内部不共享任何切片
type Snapshot struct {
	Players       []entities.Player                   `json:"players"`
	CurrentPlayer int                                 `json:"currentPlayer"`
	Bank          entities.Gems                       `json:"gems"`
	Nobles        []entities.Noble                    `json:"nobles"`
	VisibleCards  [entities.NumLevels][]entities.Card `json:"visibleCards"`
	DeckSizes     [entities.NumLevels]int             `json:"deckSizes"`
	Scores        []int                               `json:"scores"`
	Phase         Phase                               `json:"phase"`
	IsGameOver    bool                                `json:"isGameOver"`
	Winner        *int                                `json:"winner"`
	DebugMode     bool                                `json:"debugMode"`
	ActionTaken   bool                                `json:"actionTaken"`
	Round         int                                 `json:"round"`
}

func (g *Game) Snapshot() Snapshot {
	s := g.state.clone()
	snap := Snapshot{
		Players:       s.players,
		CurrentPlayer: s.currentPlayer,
		Bank:          s.bank,
		Nobles:        s.nobles,
		VisibleCards:  s.visible,
		Scores:        g.Scores(),
		Phase:         s.phase,
		IsGameOver:    s.phase == PhaseOver,
		DebugMode:     s.mode == ModeDebug,
		ActionTaken:   s.actionTaken,
		Round:         s.round,
	}
	for i, deck := range s.decks {
		snap.DeckSizes[i] = len(deck)
	}
	if s.winner >= 0 {
		w := s.winner
		snap.Winner = &w
	}
	return snap
}
