package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gem-game/dto"
	"gem-game/engine"
	"gem-game/entities"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// RoomStore 发布房间状态，只写不读
type RoomStore interface {
	SaveRoomInfo(ctx context.Context, info entities.RoomInfo) error
	SaveSnapshot(ctx context.Context, roomID string, snap engine.Snapshot) error
	SaveLastAction(ctx context.Context, roomID string, action entities.LastAction) error
	DeleteRoom(ctx context.Context, roomID string) error
}

// ResultArchive 保存已结束的对局
type ResultArchive interface {
	SaveResult(ctx context.Context, result entities.GameResult) error
}

// Broadcaster 把最新快照推送给房间内的连接
type Broadcaster interface {
	Broadcast(roomID string, snap engine.Snapshot)
	ConnCount(roomID string) int
	CloseRoom(roomID string)
}

type room struct {
	mu       sync.Mutex
	info     entities.RoomInfo
	game     *engine.Game
	archived bool
}

type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*room

	store       RoomStore
	results     ResultArchive
	broadcaster Broadcaster
	logger      *zap.Logger

	oneActionPerTurn bool
	allowDebug       bool
	newID            func() string
	newSeed          func() uint64
	now              func() time.Time
}

type Option func(*RoomManager)

func WithResultArchive(results ResultArchive) Option {
	return func(m *RoomManager) { m.results = results }
}

func WithBroadcaster(b Broadcaster) Option {
	return func(m *RoomManager) { m.broadcaster = b }
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *RoomManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithOneActionPerTurn 每回合只允许一次主要动作
func WithOneActionPerTurn(enabled bool) Option {
	return func(m *RoomManager) { m.oneActionPerTurn = enabled }
}

// WithAllowDebug 允许创建 debug 模式（购买不花宝石）的房间
func WithAllowDebug(enabled bool) Option {
	return func(m *RoomManager) { m.allowDebug = enabled }
}

func WithSeedSource(seed func() uint64) Option {
	return func(m *RoomManager) { m.newSeed = seed }
}

func NewRoomManager(store RoomStore, opts ...Option) *RoomManager {
	m := &RoomManager{
		rooms:   make(map[string]*room),
		store:   store,
		logger:  zap.NewNop(),
		newID:   newRoomID,
		newSeed: rand.Uint64,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// 生成唯一 Room ID（8位）
func newRoomID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// CreateRoom 创建房间并开局
func (m *RoomManager) CreateRoom(ctx context.Context, names []string, debugMode bool) (entities.RoomInfo, engine.Snapshot, error) {
	if debugMode && !m.allowDebug {
		return entities.RoomInfo{}, engine.Snapshot{}, ErrDebugDisabled
	}

	roomID := m.newID()
	seed := m.newSeed()
	game, err := engine.New(
		engine.WithSeed(seed),
		engine.WithLogger(m.logger.With(zap.String("roomID", roomID))),
		engine.WithOneActionPerTurn(m.oneActionPerTurn),
	)
	if err != nil {
		return entities.RoomInfo{}, engine.Snapshot{}, fmt.Errorf("创建引擎失败: %w", err)
	}
	if err := game.Initialize(len(names), names, debugMode); err != nil {
		return entities.RoomInfo{}, engine.Snapshot{}, err
	}

	r := &room{
		info: entities.RoomInfo{
			RoomID:      roomID,
			GameStatus:  entities.RoomStatusPlaying,
			MaxPlayers:  len(names),
			PlayerNames: append([]string(nil), names...),
			DebugMode:   debugMode,
			Seed:        seed,
			CreatedAt:   m.now(),
		},
		game: game,
	}
	snap := game.Snapshot()

	if err := multierr.Combine(
		m.store.SaveRoomInfo(ctx, r.info),
		m.store.SaveSnapshot(ctx, roomID, snap),
	); err != nil {
		return entities.RoomInfo{}, engine.Snapshot{}, fmt.Errorf("初始化房间信息失败: %w", err)
	}

	m.mu.Lock()
	m.rooms[roomID] = r
	m.mu.Unlock()

	m.logger.Info("房间创建成功", zap.String("roomID", roomID), zap.Strings("players", names), zap.Bool("debug", debugMode))
	return r.info, snap, nil
}

func (m *RoomManager) get(roomID string) (*room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return r, nil
}

func (m *RoomManager) Snapshot(roomID string) (engine.Snapshot, error) {
	r, err := m.get(roomID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Snapshot(), nil
}

// ListRooms 按创建时间排序的房间列表
func (m *RoomManager) ListRooms() []dto.RoomSummary {
	m.mu.RLock()
	all := make([]*room, 0, len(m.rooms))
	for _, r := range m.rooms {
		all = append(all, r)
	}
	m.mu.RUnlock()

	rooms := make([]dto.RoomSummary, 0, len(all))
	for _, r := range all {
		r.mu.Lock()
		summary := dto.RoomSummary{
			RoomID:        r.info.RoomID,
			GameStatus:    r.info.GameStatus,
			PlayerNames:   append([]string(nil), r.info.PlayerNames...),
			CurrentPlayer: r.game.CurrentPlayer(),
			DebugMode:     r.info.DebugMode,
			CreatedAt:     r.info.CreatedAt,
		}
		r.mu.Unlock()
		if m.broadcaster != nil {
			summary.Online = m.broadcaster.ConnCount(summary.RoomID)
		}
		rooms = append(rooms, summary)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].RoomID < rooms[j].RoomID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms
}

// Apply 在房间上执行一个动作。规则错误原样返回，房间状态不变；
// 成功后发布快照，发布失败只记日志。
func (m *RoomManager) Apply(ctx context.Context, roomID string, action Action) (engine.Snapshot, error) {
	r, err := m.get(roomID)
	if err != nil {
		return engine.Snapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	player := r.game.CurrentPlayer()
	if err := m.dispatch(r, action); err != nil {
		m.logger.Debug("动作被拒绝",
			zap.String("roomID", roomID),
			zap.String("action", string(action.Type)),
			zap.Error(err),
		)
		return engine.Snapshot{}, err
	}

	snap := r.game.Snapshot()
	m.publish(ctx, r, player, action, snap)
	return snap, nil
}

func (m *RoomManager) dispatch(r *room, action Action) error {
	g := r.game
	switch action.Type {
	case ActionTakeGems:
		return g.TakeGems(action.Gems)
	case ActionReturnGems:
		return g.ReturnGems(action.Gems)
	case ActionBuyCard:
		return g.PurchaseCard(action.Level, action.CardID)
	case ActionBuyReserved:
		return g.PurchaseReservedCard(action.Index)
	case ActionReserveCard:
		return g.ReserveCard(action.Level, action.CardID)
	case ActionSelectNoble:
		return g.EndTurnWithNoble(action.NobleID)
	case ActionEndTurn:
		return g.EndTurn()
	case ActionRestartGame:
		return m.restart(r, action)
	default:
		return fmt.Errorf("%w: 未知的动作类型 %q", ErrBadAction, action.Type)
	}
}

// restart 重新开局，不传名字时沿用原来的玩家，不传 debugMode 时沿用原来的模式
func (m *RoomManager) restart(r *room, action Action) error {
	names := action.PlayerNames
	if len(names) == 0 {
		names = r.info.PlayerNames
	}
	debug := r.info.DebugMode
	if action.DebugMode != nil {
		debug = *action.DebugMode
	}
	if debug && !m.allowDebug {
		return ErrDebugDisabled
	}
	if err := r.game.Initialize(len(names), names, debug); err != nil {
		return err
	}
	r.info.PlayerNames = append([]string(nil), names...)
	r.info.MaxPlayers = len(names)
	r.info.DebugMode = debug
	r.info.GameStatus = entities.RoomStatusPlaying
	r.archived = false
	return nil
}

func (m *RoomManager) publish(ctx context.Context, r *room, player int, action Action, snap engine.Snapshot) {
	roomID := r.info.RoomID
	logger := m.logger.With(zap.String("roomID", roomID))

	payload, err := json.Marshal(action)
	if err != nil {
		logger.Warn("序列化动作失败", zap.Error(err))
	}
	var errs error
	errs = multierr.Append(errs, m.store.SaveSnapshot(ctx, roomID, snap))
	errs = multierr.Append(errs, m.store.SaveLastAction(ctx, roomID, entities.LastAction{
		Action:   string(action.Type),
		PlayerID: player,
		Payload:  payload,
		At:       m.now(),
	}))

	if action.Type == ActionRestartGame {
		errs = multierr.Append(errs, m.store.SaveRoomInfo(ctx, r.info))
	}
	if snap.IsGameOver && !r.archived {
		r.info.GameStatus = entities.RoomStatusEnd
		r.archived = true
		errs = multierr.Append(errs, m.store.SaveRoomInfo(ctx, r.info))
		if m.results != nil {
			errs = multierr.Append(errs, m.results.SaveResult(ctx, gameResult(r.info, snap, m.now())))
		}
	}
	if errs != nil {
		logger.Warn("发布房间状态失败", zap.Errors("errors", multierr.Errors(errs)))
	}

	if m.broadcaster != nil {
		m.broadcaster.Broadcast(roomID, snap)
	}
}

func gameResult(info entities.RoomInfo, snap engine.Snapshot, at time.Time) entities.GameResult {
	result := entities.GameResult{
		RoomID:     info.RoomID,
		Scores:     snap.Scores,
		Players:    append([]string(nil), info.PlayerNames...),
		Rounds:     snap.Round,
		DebugMode:  info.DebugMode,
		FinishedAt: at,
	}
	if snap.Winner != nil {
		result.Winner = *snap.Winner
		result.WinnerName = snap.Players[*snap.Winner].Name
	}
	return result
}

// DeleteRoom 删除房间及其 redis 数据
func (m *RoomManager) DeleteRoom(ctx context.Context, roomID string) error {
	m.mu.Lock()
	_, ok := m.rooms[roomID]
	delete(m.rooms, roomID)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	if m.broadcaster != nil {
		m.broadcaster.CloseRoom(roomID)
	}

	if err := m.store.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("删除房间数据失败: %w", err)
	}
	m.logger.Info("房间已删除", zap.String("roomID", roomID))
	return nil
}

// Exists 房间是否存在
func (m *RoomManager) Exists(roomID string) bool {
	_, err := m.get(roomID)
	return err == nil
}
