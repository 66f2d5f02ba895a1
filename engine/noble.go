package engine

import (
	"fmt"

	"gem-game/entities"
)

// qualifies 只看已购买卡牌的折扣，手上的宝石和 gold 都不算
func qualifies(player *entities.Player, noble entities.Noble) bool {
	return player.Bonuses().Covers(noble.Requirements)
}

// CheckEligible 返回玩家满足条件的贵族，按贵族池顺序，不修改状态
func (g *Game) CheckEligible(playerIndex int) []entities.Noble {
	if playerIndex < 0 || playerIndex >= len(g.state.players) {
		return nil
	}
	player := &g.state.players[playerIndex]

	eligible := make([]entities.Noble, 0)
	for _, noble := range g.state.nobles {
		if qualifies(player, noble) {
			eligible = append(eligible, noble)
		}
	}
	return eligible
}

// AwardNoble 把贵族从贵族池移到当前玩家，不检查条件
func (g *Game) AwardNoble(nobleID int) error {
	if err := g.ensurePlaying(false); err != nil {
		return g.reject("award_noble", err)
	}
	if err := g.awardNoble(nobleID); err != nil {
		return g.reject("award_noble", err)
	}
	return nil
}

func (g *Game) awardNoble(nobleID int) error {
	for i, noble := range g.state.nobles {
		if noble.ID != nobleID {
			continue
		}
		player := g.state.current()
		player.Nobles = append(player.Nobles, noble)
		g.state.nobles = append(g.state.nobles[:i:i], g.state.nobles[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: 贵族 %d", ErrNobleNotAvailable, nobleID)
}
