package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gem-game/engine"
	"gem-game/entities"

	"github.com/go-redis/redis/v8"
)

func roomInfoKey(roomID string) string { return fmt.Sprintf("room:%s:roomInfo", roomID) }
func snapshotKey(roomID string) string { return fmt.Sprintf("room:%s:snapshot", roomID) }
func lastDataKey(roomID string) string { return fmt.Sprintf("room:%s:last_data", roomID) }

// RoomStore 把房间状态发布到 Redis，供其他服务读取
type RoomStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRoomStore ttl 为 0 表示不过期
func NewRoomStore(rdb *redis.Client, ttl time.Duration) *RoomStore {
	return &RoomStore{rdb: rdb, ttl: ttl}
}

func roomInfoFields(info entities.RoomInfo) (map[string]interface{}, error) {
	names, err := json.Marshal(info.PlayerNames)
	if err != nil {
		return nil, fmt.Errorf("序列化玩家名字失败: %w", err)
	}
	return map[string]interface{}{
		"roomID":      info.RoomID,
		"gameStatus":  string(info.GameStatus),
		"maxPlayers":  strconv.Itoa(info.MaxPlayers),
		"playerNames": string(names),
		"debugMode":   strconv.FormatBool(info.DebugMode),
		"seed":        strconv.FormatUint(info.Seed, 10),
		"createdAt":   info.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// SaveRoomInfo 设置房间的全部信息（Hash）
func (s *RoomStore) SaveRoomInfo(ctx context.Context, info entities.RoomInfo) error {
	data, err := roomInfoFields(info)
	if err != nil {
		return err
	}
	key := roomInfoKey(info.RoomID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("设置房间信息失败: %w", err)
	}
	return nil
}

func (s *RoomStore) SaveSnapshot(ctx context.Context, roomID string, snap engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("序列化快照失败: %w", err)
	}
	if err := s.rdb.Set(ctx, snapshotKey(roomID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("保存快照失败: %w", err)
	}
	return nil
}

// SaveLastAction 保存玩家最近一次操作，每个玩家一个 field
func (s *RoomStore) SaveLastAction(ctx context.Context, roomID string, action entities.LastAction) error {
	bytes, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("序列化 LastAction 失败: %w", err)
	}
	key := lastDataKey(roomID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, fmt.Sprintf("player:%d", action.PlayerID), bytes)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存 LastAction 失败: %w", err)
	}
	return nil
}

// DeleteRoom 用 SCAN 找出 room:{roomID}: 开头的所有 key 并删除
func (s *RoomStore) DeleteRoom(ctx context.Context, roomID string) error {
	prefix := fmt.Sprintf("room:%s:", roomID)
	var cursor uint64
	var keysToDelete []string

	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	if len(keysToDelete) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keysToDelete...).Err(); err != nil {
		return fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	return nil
}
