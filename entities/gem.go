package entities

import (
	"encoding/json"
	"fmt"
)

// GemType 宝石颜色，gold 为万能宝石
type GemType int

const (
	Diamond GemType = iota
	Sapphire
	Emerald
	Ruby
	Onyx
	Gold

	NumGemTypes = 6
)

// ColoredGems 五种普通颜色（不含 gold），顺序固定
var ColoredGems = [...]GemType{Diamond, Sapphire, Emerald, Ruby, Onyx}

var gemNames = [NumGemTypes]string{"diamond", "sapphire", "emerald", "ruby", "onyx", "gold"}

func (g GemType) String() string {
	if !g.Valid() {
		return fmt.Sprintf("GemType(%d)", int(g))
	}
	return gemNames[g]
}

func (g GemType) Valid() bool {
	return g >= Diamond && g <= Gold
}

// ParseGemType 根据名称解析宝石颜色
func ParseGemType(s string) (GemType, error) {
	for i, name := range gemNames {
		if name == s {
			return GemType(i), nil
		}
	}
	return 0, fmt.Errorf("未知的宝石颜色: %q", s)
}

func (g GemType) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("未知的宝石颜色: %d", int(g))
	}
	return []byte(gemNames[g]), nil
}

func (g *GemType) UnmarshalText(text []byte) error {
	parsed, err := ParseGemType(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Gems 每种颜色的数量，六个颜色始终都有值
type Gems [NumGemTypes]int

// NewGems 由部分映射构造完整的 Gems，缺失的颜色为 0
func NewGems(counts map[GemType]int) Gems {
	var g Gems
	for t, n := range counts {
		if t.Valid() {
			g[t] = n
		}
	}
	return g
}

func (g Gems) Total() int {
	total := 0
	for _, n := range g {
		total += n
	}
	return total
}

func (g Gems) Add(o Gems) Gems {
	for i := range g {
		g[i] += o[i]
	}
	return g
}

func (g Gems) Sub(o Gems) Gems {
	for i := range g {
		g[i] -= o[i]
	}
	return g
}

// Covers 判断 g 的每种颜色都不少于 o
func (g Gems) Covers(o Gems) bool {
	for i := range g {
		if g[i] < o[i] {
			return false
		}
	}
	return true
}

func (g Gems) HasNegative() bool {
	for _, n := range g {
		if n < 0 {
			return true
		}
	}
	return false
}

// Kinds 数量大于 0 的颜色，按枚举顺序
func (g Gems) Kinds() []GemType {
	kinds := make([]GemType, 0, NumGemTypes)
	for i, n := range g {
		if n > 0 {
			kinds = append(kinds, GemType(i))
		}
	}
	return kinds
}

func (g Gems) Map() map[string]int {
	m := make(map[string]int, NumGemTypes)
	for i, n := range g {
		m[gemNames[i]] = n
	}
	return m
}

func (g Gems) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Map())
}

func (g *Gems) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("宝石数量解析失败: %w", err)
	}
	parsed, err := GemsFromMap(raw)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// GemsFromMap 把 {"ruby": 1} 形式的数据转成 Gems，未知颜色报错
func GemsFromMap(raw map[string]int) (Gems, error) {
	var g Gems
	for name, n := range raw {
		t, err := ParseGemType(name)
		if err != nil {
			return Gems{}, err
		}
		g[t] = n
	}
	return g, nil
}
