package generator

import (
	"fmt"

	"gem-game/entities"
)

const defaultNobleCount = 10

// Content 一局游戏使用的全部牌：每个等级一副牌 + 贵族池
type Content struct {
	Cards  [entities.NumLevels][]entities.Card
	Nobles []entities.Noble
}

// Generate 按默认数量生成 40/30/20 张卡牌和 10 个贵族
func Generate(rng Rand) (Content, error) {
	var content Content
	for _, level := range entities.Levels {
		cards, err := GenerateCards(level, levelRules[level].deckLength, rng)
		if err != nil {
			return Content{}, fmt.Errorf("生成 %d 级卡牌失败: %w", level, err)
		}
		content.Cards[level.Index()] = cards
	}

	nobles, err := GenerateNobles(defaultNobleCount, rng)
	if err != nil {
		return Content{}, fmt.Errorf("生成贵族失败: %w", err)
	}
	content.Nobles = nobles
	return content, nil
}
