package engine

import (
	"fmt"

	"gem-game/entities"
)

// TakeGems 当前玩家从宝石池拿宝石。合法的拿法只有两种：
// 同色 2 个（拿之前池中该色至少 4 个），或 1~3 种不同颜色各 1 个。gold 不能直接拿。
func (g *Game) TakeGems(selection entities.Gems) error {
	if err := g.ensurePlaying(true); err != nil {
		return g.reject("take_gems", err)
	}
	if err := validateTake(g.state.bank, selection); err != nil {
		return g.reject("take_gems", err)
	}

	player := g.state.current()
	if player.Gems.Total()+selection.Total() > entities.MaxPlayerGems {
		return g.reject("take_gems", fmt.Errorf("%w: 手上 %d 个，再拿 %d 个", ErrCapExceeded, player.Gems.Total(), selection.Total()))
	}

	g.state.bank = g.state.bank.Sub(selection)
	player.Gems = player.Gems.Add(selection)
	g.state.actionTaken = true
	return nil
}

func validateTake(bank, selection entities.Gems) error {
	if selection.HasNegative() {
		return fmt.Errorf("%w: 数量不能为负", ErrInvalidSelection)
	}
	if selection[entities.Gold] > 0 {
		return fmt.Errorf("%w: gold 只能通过预留卡牌获得", ErrInvalidSelection)
	}

	kinds := selection.Kinds()
	switch {
	case len(kinds) == 1 && selection[kinds[0]] == 2:
		gem := kinds[0]
		if bank[gem] < 4 {
			return fmt.Errorf("%w: 拿 2 个 %s 需要池中至少 4 个，当前 %d 个", ErrInvalidSelection, gem, bank[gem])
		}
	case len(kinds) >= 1 && len(kinds) <= 3 && selection.Total() == len(kinds):
		for _, gem := range kinds {
			if bank[gem] < 1 {
				return fmt.Errorf("%w: 池中没有 %s", ErrInvalidSelection, gem)
			}
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidSelection, selection.Map())
	}
	return nil
}

// ReturnGems 当前玩家把宝石放回宝石池，数量不能超过手上已有的
func (g *Game) ReturnGems(selection entities.Gems) error {
	if err := g.ensurePlaying(false); err != nil {
		return g.reject("return_gems", err)
	}
	if selection.HasNegative() || selection.Total() == 0 {
		return g.reject("return_gems", fmt.Errorf("%w: %v", ErrInvalidSelection, selection.Map()))
	}

	player := g.state.current()
	if !player.Gems.Covers(selection) {
		return g.reject("return_gems", fmt.Errorf("%w: 手上宝石不够归还", ErrInvalidSelection))
	}

	player.Gems = player.Gems.Sub(selection)
	g.state.bank = g.state.bank.Add(selection)
	return nil
}
