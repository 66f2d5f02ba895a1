// Package generator 随机生成三个等级的发展卡与贵族。
//
// 所有随机数都来自调用方传入的 Rand，同一个种子得到同样的牌组。
package generator

import (
	"fmt"

	"gem-game/entities"
)

// Rand 生成器需要的随机源，*rand.Rand (golang.org/x/exp/rand) 满足该接口
type Rand interface {
	Intn(n int) int
}

type levelRule struct {
	minPoints  int
	maxPoints  int
	minCost    int
	maxCost    int
	maxPerGem  int
	deckLength int
}

var levelRules = map[entities.Level]levelRule{
	entities.Level1: {minPoints: 0, maxPoints: 1, minCost: 3, maxCost: 5, maxPerGem: 3, deckLength: 40},
	entities.Level2: {minPoints: 1, maxPoints: 3, minCost: 5, maxCost: 7, maxPerGem: 5, deckLength: 30},
	entities.Level3: {minPoints: 3, maxPoints: 5, minCost: 7, maxCost: 10, maxPerGem: 7, deckLength: 20},
}

// CardID 卡牌ID = 等级*1000 + 序号，三个等级之间不会重复
func CardID(level entities.Level, ordinal int) int {
	return int(level)*1000 + ordinal
}

// GenerateCards 生成 count 张指定等级的卡牌
func GenerateCards(level entities.Level, count int, rng Rand) ([]entities.Card, error) {
	rule, ok := levelRules[level]
	if !ok {
		return nil, fmt.Errorf("卡牌等级错误: %d", level)
	}
	if count < 0 {
		return nil, fmt.Errorf("卡牌数量错误: %d", count)
	}

	cards := make([]entities.Card, 0, count)
	for i := 0; i < count; i++ {
		points := rule.minPoints + rng.Intn(rule.maxPoints-rule.minPoints+1)
		gem := entities.ColoredGems[rng.Intn(len(entities.ColoredGems))]

		cards = append(cards, entities.Card{
			ID:     CardID(level, i+1),
			Level:  level,
			Points: points,
			Gem:    gem,
			Cost:   randomCost(rule, gem, rng),
		})
	}
	return cards, nil
}

// randomCost 把总费用随机分到除自身颜色以外的颜色上
func randomCost(rule levelRule, own entities.GemType, rng Rand) entities.Gems {
	var cost entities.Gems
	remaining := rule.minCost + rng.Intn(rule.maxCost-rule.minCost+1)

	available := make([]entities.GemType, 0, len(entities.ColoredGems)-1)
	for _, g := range entities.ColoredGems {
		if g != own {
			available = append(available, g)
		}
	}

	chosen := make([]entities.GemType, 0, len(available))
	for remaining > 0 && len(available) > 0 {
		idx := rng.Intn(len(available))
		gem := available[idx]
		share := rng.Intn(min(remaining, rule.maxPerGem)) + 1

		cost[gem] = share
		remaining -= share
		chosen = append(chosen, gem)
		available = append(available[:idx], available[idx+1:]...)
	}

	// 剩余费用只加到已选颜色上，且不超过单色上限
	for remaining > 0 {
		open := make([]entities.GemType, 0, len(chosen))
		for _, gem := range chosen {
			if cost[gem] < rule.maxPerGem {
				open = append(open, gem)
			}
		}
		if len(open) == 0 {
			break
		}
		cost[open[rng.Intn(len(open))]]++
		remaining--
	}
	return cost
}
