package generator

import (
	"fmt"

	"gem-game/entities"
)

const noblePoints = 3

// maxDistinctNobles C(5,2) + C(5,3)
const maxDistinctNobles = 20

// GenerateNobles 生成 count 个要求互不相同的贵族：2 色各 4 张或 3 色各 3 张
func GenerateNobles(count int, rng Rand) ([]entities.Noble, error) {
	if count < 0 || count > maxDistinctNobles {
		return nil, fmt.Errorf("贵族数量错误: %d (最多 %d)", count, maxDistinctNobles)
	}

	nobles := make([]entities.Noble, 0, count)
	used := make(map[string]bool, count)

	for len(nobles) < count {
		kinds, amount := 3, 3
		if rng.Intn(2) == 0 {
			kinds, amount = 2, 4
		}

		var req entities.Gems
		for _, gem := range pickColors(kinds, rng) {
			req[gem] = amount
		}

		noble := entities.Noble{
			ID:           len(nobles) + 1,
			Points:       noblePoints,
			Requirements: req,
		}
		sig := noble.Signature()
		if used[sig] {
			continue
		}
		used[sig] = true
		nobles = append(nobles, noble)
	}
	return nobles, nil
}

// pickColors 从五种颜色里不重复地取 n 个
func pickColors(n int, rng Rand) []entities.GemType {
	pool := entities.ColoredGems
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return append([]entities.GemType(nil), pool[:n]...)
}
