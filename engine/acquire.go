package engine

import (
	"fmt"

	"gem-game/entities"
)

// payment 计算玩家购买 card 实际要付的宝石（含 gold）。
// 每种颜色先扣除折扣，手上该色不够的部分用 gold 补，gold 不够则无法购买。
func payment(player *entities.Player, card entities.Card) (entities.Gems, error) {
	bonuses := player.Bonuses()

	var paid entities.Gems
	goldNeeded := 0
	for _, gem := range entities.ColoredGems {
		due := max(0, card.Cost[gem]-bonuses[gem])
		if player.Gems[gem] >= due {
			paid[gem] = due
		} else {
			paid[gem] = player.Gems[gem]
			goldNeeded += due - player.Gems[gem]
		}
	}

	if goldNeeded > player.Gems[entities.Gold] {
		return entities.Gems{}, fmt.Errorf("%w: 还差 %d 个 gold", ErrInsufficientResources, goldNeeded-player.Gems[entities.Gold])
	}
	paid[entities.Gold] = goldNeeded
	return paid, nil
}

// settle 按当前模式计算支付，debug 模式下永远成功且不花费宝石
func (g *Game) settle(player *entities.Player, card entities.Card) (entities.Gems, error) {
	if g.state.mode == ModeDebug {
		return entities.Gems{}, nil
	}
	return payment(player, card)
}

// Payment 预览玩家购买 card 需要支付的宝石
func (g *Game) Payment(playerIndex int, card entities.Card) (entities.Gems, error) {
	if playerIndex < 0 || playerIndex >= len(g.state.players) {
		return entities.Gems{}, fmt.Errorf("%w: 玩家 %d", ErrInvalidIndex, playerIndex)
	}
	return g.settle(&g.state.players[playerIndex], card)
}

func (g *Game) CanAfford(playerIndex int, card entities.Card) bool {
	_, err := g.Payment(playerIndex, card)
	return err == nil
}

// findVisible 在指定等级翻开的卡牌中按 ID 查找
func (g *Game) findVisible(level entities.Level, cardID int) (int, error) {
	if !level.Valid() {
		return -1, fmt.Errorf("%w: 等级 %d", ErrCardNotAvailable, level)
	}
	for i, c := range g.state.visible[level.Index()] {
		if c.ID == cardID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: 卡牌 %d 不在 %d 级", ErrCardNotAvailable, cardID, level)
}

// takeVisible 拿走桌面上的卡牌，牌堆还有牌时翻开一张补到同一个位置
func (g *Game) takeVisible(level entities.Level, slot int) entities.Card {
	i := level.Index()
	row := g.state.visible[i]
	card := row[slot]

	if len(g.state.decks[i]) > 0 {
		row[slot] = g.state.decks[i][0]
		g.state.decks[i] = g.state.decks[i][1:]
	} else {
		row = append(row[:slot], row[slot+1:]...)
	}
	g.state.visible[i] = row
	return card
}

func (g *Game) pay(player *entities.Player, paid entities.Gems) {
	player.Gems = player.Gems.Sub(paid)
	g.state.bank = g.state.bank.Add(paid)
}

// PurchaseCard 购买桌面上的卡牌
func (g *Game) PurchaseCard(level entities.Level, cardID int) error {
	if err := g.ensurePlaying(true); err != nil {
		return g.reject("purchase_card", err)
	}
	slot, err := g.findVisible(level, cardID)
	if err != nil {
		return g.reject("purchase_card", err)
	}

	player := g.state.current()
	card := g.state.visible[level.Index()][slot]
	paid, err := g.settle(player, card)
	if err != nil {
		return g.reject("purchase_card", err)
	}

	g.pay(player, paid)
	player.PurchasedCards = append(player.PurchasedCards, g.takeVisible(level, slot))
	g.state.actionTaken = true
	return nil
}

// PurchaseReservedCard 购买自己预留的第 index 张卡牌
func (g *Game) PurchaseReservedCard(index int) error {
	if err := g.ensurePlaying(true); err != nil {
		return g.reject("purchase_reserved", err)
	}

	player := g.state.current()
	if index < 0 || index >= len(player.ReservedCards) {
		return g.reject("purchase_reserved", fmt.Errorf("%w: 预留卡 %d，共 %d 张", ErrInvalidIndex, index, len(player.ReservedCards)))
	}

	card := player.ReservedCards[index]
	paid, err := g.settle(player, card)
	if err != nil {
		return g.reject("purchase_reserved", err)
	}

	g.pay(player, paid)
	player.PurchasedCards = append(player.PurchasedCards, card)
	player.ReservedCards = append(player.ReservedCards[:index:index], player.ReservedCards[index+1:]...)
	g.state.actionTaken = true
	return nil
}

// ReserveCard 预留桌面上的卡牌；池中有 gold 且玩家不足 10 个宝石时奖励 1 个 gold
func (g *Game) ReserveCard(level entities.Level, cardID int) error {
	if err := g.ensurePlaying(true); err != nil {
		return g.reject("reserve_card", err)
	}

	player := g.state.current()
	if len(player.ReservedCards) >= entities.MaxReservedCards {
		return g.reject("reserve_card", ErrReservationLimitReached)
	}
	slot, err := g.findVisible(level, cardID)
	if err != nil {
		return g.reject("reserve_card", err)
	}

	grantGold := g.state.bank[entities.Gold] > 0 && player.Gems.Total() < entities.MaxPlayerGems

	player.ReservedCards = append(player.ReservedCards, g.takeVisible(level, slot))
	if grantGold {
		g.state.bank[entities.Gold]--
		player.Gems[entities.Gold]++
	}
	g.state.actionTaken = true
	return nil
}
