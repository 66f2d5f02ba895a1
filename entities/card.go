package entities

import "fmt"

// Level 卡牌等级 1/2/3
type Level int

const (
	Level1 Level = 1
	Level2 Level = 2
	Level3 Level = 3

	NumLevels = 3
)

var Levels = [NumLevels]Level{Level1, Level2, Level3}

func (l Level) Valid() bool {
	return l >= Level1 && l <= Level3
}

// Index 等级对应的数组下标
func (l Level) Index() int {
	return int(l) - 1
}

func ParseLevel(n int) (Level, error) {
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("卡牌等级错误: %d", n)
	}
	return l, nil
}

// Card 发展卡，创建后不再修改，按 ID 区分
type Card struct {
	ID     int     `json:"id"`     // 卡牌ID
	Level  Level   `json:"level"`  // 1/2/3
	Points int     `json:"points"` // 荣誉分
	Gem    GemType `json:"gem"`    // 折扣颜色，不会是 gold
	Cost   Gems    `json:"cost"`   // 费用，gold 与自身颜色恒为 0
}

// Noble 贵族，只看玩家已购买卡牌的折扣
type Noble struct {
	ID           int  `json:"id"`
	Points       int  `json:"points"`       // 固定 3 分
	Requirements Gems `json:"requirements"` // 如 {"emerald":4,"sapphire":4}
}

func (n Noble) Signature() string {
	sig := ""
	for _, t := range n.Requirements.Kinds() {
		if sig != "" {
			sig += ","
		}
		sig += fmt.Sprintf("%s:%d", t, n.Requirements[t])
	}
	return sig
}
