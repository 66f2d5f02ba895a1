package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// EndTurn 结束当前玩家的回合。满足条件的贵族有多个时，取贵族池中的第一个。
func (g *Game) EndTurn() error {
	return g.endTurn(0, false)
}

// EndTurnWithNoble 结束回合并指定要拜访的贵族，该贵族必须满足条件
func (g *Game) EndTurnWithNoble(nobleID int) error {
	return g.endTurn(nobleID, true)
}

func (g *Game) endTurn(nobleID int, chosen bool) error {
	if err := g.ensurePlaying(false); err != nil {
		return g.reject("end_turn", err)
	}

	eligible := g.CheckEligible(g.state.currentPlayer)
	award, found := 0, false
	if chosen {
		for _, noble := range eligible {
			if noble.ID == nobleID {
				award, found = noble.ID, true
				break
			}
		}
		if !found {
			return g.reject("end_turn", fmt.Errorf("%w: 贵族 %d", ErrNobleNotEligible, nobleID))
		}
	} else if len(eligible) > 0 {
		award, found = eligible[0].ID, true
	}

	if found {
		if err := g.awardNoble(award); err != nil {
			return g.reject("end_turn", err)
		}
		g.logger.Debug("贵族来访", zap.Int("player", g.state.currentPlayer), zap.Int("noble", award))
	}

	g.advance()
	return nil
}

// advance 轮到下一位玩家；回到 0 号玩家时一轮结束，检查是否有人达到胜利分数
func (g *Game) advance() {
	g.state.currentPlayer = (g.state.currentPlayer + 1) % len(g.state.players)
	g.state.actionTaken = false
	if g.state.currentPlayer != 0 {
		return
	}
	g.state.round++

	scores := g.Scores()
	winner, best := -1, -1
	for i, score := range scores {
		if score > best {
			winner, best = i, score
		}
	}
	if best < WinningPoints {
		return
	}

	g.state.phase = PhaseOver
	g.state.winner = winner
	g.logger.Info("游戏结束",
		zap.Int("winner", winner),
		zap.String("name", g.state.players[winner].Name),
		zap.Ints("scores", scores),
		zap.Int("rounds", g.state.round),
	)
}

// Scores 每个玩家的分数：卡牌分 + 贵族分
func (g *Game) Scores() []int {
	scores := make([]int, len(g.state.players))
	for i := range g.state.players {
		scores[i] = g.state.players[i].Score()
	}
	return scores
}
