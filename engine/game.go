// Package engine 是宝石卡牌游戏的规则引擎。
//
// Game 持有一局游戏的全部状态，只能通过它的方法修改。每个操作要么完整生效，
// 要么返回错误且状态保持不变。Game 不是并发安全的，调用方需要自行串行化。
package engine

import (
	"fmt"

	"gem-game/entities"
	"gem-game/generator"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// WinningPoints 回合结束时达到该分数即触发游戏结束
const WinningPoints = 15

// VisibleCardsPerLevel 每个等级翻开的卡牌数
const VisibleCardsPerLevel = 4

// 不同人数的初始宝石
var initialBank = map[int]entities.Gems{
	2: {4, 4, 4, 4, 4, 5},
	3: {5, 5, 5, 5, 5, 5},
	4: {7, 7, 7, 7, 7, 5},
}

// InitialBank 返回 playerCount 人局的初始宝石池
func InitialBank(playerCount int) (entities.Gems, bool) {
	g, ok := initialBank[playerCount]
	return g, ok
}

type Phase string

const (
	PhaseAwaitingAction Phase = "awaiting_action"
	PhaseOver           Phase = "over"
)

// Mode 支付模式，debug 模式下购买不花费任何宝石
type Mode int

const (
	ModeStandard Mode = iota
	ModeDebug
)

type state struct {
	players       []entities.Player
	currentPlayer int
	bank          entities.Gems
	nobles        []entities.Noble
	decks         [entities.NumLevels][]entities.Card // 牌堆，下标 0 先被抽
	visible       [entities.NumLevels][]entities.Card
	phase         Phase
	winner        int // -1 表示没有
	mode          Mode
	actionTaken   bool
	round         int
}

func (s *state) clone() state {
	c := *s
	c.players = make([]entities.Player, len(s.players))
	for i, p := range s.players {
		c.players[i] = p.Clone()
	}
	// 空的行和牌堆也要序列化成 []，不能是 null
	c.nobles = append(make([]entities.Noble, 0, len(s.nobles)), s.nobles...)
	for i := range s.decks {
		c.decks[i] = append(make([]entities.Card, 0, len(s.decks[i])), s.decks[i]...)
		c.visible[i] = append(make([]entities.Card, 0, len(s.visible[i])), s.visible[i]...)
	}
	return c
}

func (s *state) current() *entities.Player {
	return &s.players[s.currentPlayer]
}

type Game struct {
	logger           *zap.Logger
	rng              generator.Rand
	content          generator.Content
	hasContent       bool
	oneActionPerTurn bool

	initialized bool
	state       state
}

type Option func(*Game)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSeed 用固定种子初始化随机源，牌组和洗牌结果可以复现
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng generator.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithContent 使用给定的牌组，不再调用生成器
func WithContent(content generator.Content) Option {
	return func(g *Game) {
		g.content = content
		g.hasContent = true
	}
}

// WithOneActionPerTurn 每回合只允许一次拿宝石/购买/预留
func WithOneActionPerTurn(enabled bool) Option {
	return func(g *Game) {
		g.oneActionPerTurn = enabled
	}
}

// New 创建引擎并生成牌组，之后需要调用 Initialize 开局
func New(opts ...Option) (*Game, error) {
	g := &Game{
		logger: zap.NewNop(),
		rng:    rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(g)
	}

	if !g.hasContent {
		content, err := generator.Generate(g.rng)
		if err != nil {
			return nil, fmt.Errorf("生成牌组失败: %w", err)
		}
		g.content = content
		g.hasContent = true
	}
	return g, nil
}

// Initialize 开始新的一局：洗牌、每级翻开 4 张、选出人数+1 个贵族、按人数放置宝石
func (g *Game) Initialize(playerCount int, names []string, debugMode bool) error {
	bank, ok := initialBank[playerCount]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerCount, playerCount)
	}
	if len(names) != playerCount {
		return fmt.Errorf("%w: 需要 %d 个名字，收到 %d 个", ErrInvalidPlayerCount, playerCount, len(names))
	}

	s := state{
		players: make([]entities.Player, playerCount),
		bank:    bank,
		phase:   PhaseAwaitingAction,
		winner:  -1,
		mode:    ModeStandard,
	}
	if debugMode {
		s.mode = ModeDebug
	}
	for i, name := range names {
		s.players[i] = entities.NewPlayer(i, name)
	}

	for i, deck := range g.content.Cards {
		shuffled := shuffle(deck, g.rng)
		n := min(VisibleCardsPerLevel, len(shuffled))
		s.visible[i] = shuffled[:n:n]
		s.decks[i] = shuffled[n:]
	}

	nobles := shuffle(g.content.Nobles, g.rng)
	s.nobles = nobles[:min(playerCount+1, len(nobles))]

	g.state = s
	g.initialized = true
	g.logger.Info("新的一局开始",
		zap.Int("players", playerCount),
		zap.Strings("names", names),
		zap.Bool("debug", debugMode),
	)
	return nil
}

// shuffle 返回打乱后的副本，不修改原牌组
func shuffle[T any](items []T, rng generator.Rand) []T {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ensurePlaying 检查是否可以执行修改状态的操作；primary 表示拿宝石/购买/预留
func (g *Game) ensurePlaying(primary bool) error {
	if !g.initialized {
		return ErrNotInitialized
	}
	if g.state.phase == PhaseOver {
		return ErrGameOver
	}
	if primary && g.oneActionPerTurn && g.state.actionTaken {
		return ErrActionAlreadyTaken
	}
	return nil
}

// reject 记录被拒绝的操作并原样返回错误
func (g *Game) reject(op string, err error) error {
	if g.initialized {
		g.logger.Debug("操作被拒绝",
			zap.String("op", op),
			zap.Int("player", g.state.currentPlayer),
			zap.Error(err),
		)
	}
	return err
}

func (g *Game) CurrentPlayer() int {
	return g.state.currentPlayer
}

func (g *Game) PlayerCount() int {
	return len(g.state.players)
}

func (g *Game) Phase() Phase {
	return g.state.phase
}

func (g *Game) IsGameOver() bool {
	return g.state.phase == PhaseOver
}

// Winner 游戏结束后返回胜者下标
func (g *Game) Winner() (int, bool) {
	if g.state.winner < 0 {
		return 0, false
	}
	return g.state.winner, true
}

func (g *Game) Mode() Mode {
	return g.state.mode
}

// Player 返回玩家的副本
func (g *Game) Player(index int) (entities.Player, error) {
	if index < 0 || index >= len(g.state.players) {
		return entities.Player{}, fmt.Errorf("%w: 玩家 %d", ErrInvalidIndex, index)
	}
	return g.state.players[index].Clone(), nil
}

// Bank 当前宝石池
func (g *Game) Bank() entities.Gems {
	return g.state.bank
}

// Totals 宝石池与所有玩家手中宝石之和，每种颜色应始终等于初始值
func (g *Game) Totals() entities.Gems {
	total := g.state.bank
	for _, p := range g.state.players {
		total = total.Add(p.Gems)
	}
	return total
}
