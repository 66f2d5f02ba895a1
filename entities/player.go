package entities

// MaxPlayerGems 玩家手上宝石上限
const MaxPlayerGems = 10

// MaxReservedCards 预留卡上限
const MaxReservedCards = 3

type Player struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Gems           Gems    `json:"gems"`
	ReservedCards  []Card  `json:"reservedCards"`
	PurchasedCards []Card  `json:"purchasedCards"`
	Nobles         []Noble `json:"nobles"`
}

// NewPlayer 初始化玩家，宝石全部为 0
func NewPlayer(id int, name string) Player {
	return Player{
		ID:             id,
		Name:           name,
		ReservedCards:  []Card{},
		PurchasedCards: []Card{},
		Nobles:         []Noble{},
	}
}

// Bonuses 已购买卡牌带来的每种颜色折扣
func (p *Player) Bonuses() Gems {
	var b Gems
	for _, c := range p.PurchasedCards {
		b[c.Gem]++
	}
	return b
}

// Score 卡牌分数 + 贵族分数
func (p *Player) Score() int {
	score := 0
	for _, c := range p.PurchasedCards {
		score += c.Points
	}
	for _, n := range p.Nobles {
		score += n.Points
	}
	return score
}

// Clone 深拷贝，快照用
func (p Player) Clone() Player {
	p.ReservedCards = append(make([]Card, 0, len(p.ReservedCards)), p.ReservedCards...)
	p.PurchasedCards = append(make([]Card, 0, len(p.PurchasedCards)), p.PurchasedCards...)
	p.Nobles = append(make([]Noble, 0, len(p.Nobles)), p.Nobles...)
	return p
}
