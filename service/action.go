package service

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"gem-game/dto"
	"gem-game/entities"

	"github.com/mitchellh/mapstructure"
)

type ActionType string

const (
	ActionTakeGems    ActionType = "take_gems"
	ActionReturnGems  ActionType = "return_gems"
	ActionBuyCard     ActionType = "buy_card"
	ActionBuyReserved ActionType = "buy_reserved"
	ActionReserveCard ActionType = "reserve_card"
	ActionSelectNoble ActionType = "select_noble"
	ActionEndTurn     ActionType = "end_turn"
	ActionRestartGame ActionType = "restart_game"
)

// Action 解码并校验过的动作
type Action struct {
	Type        ActionType     `json:"type"`
	Gems        entities.Gems  `json:"gems"`
	Level       entities.Level `json:"level,omitempty"`
	CardID      int            `json:"cardID,omitempty"`
	Index       int            `json:"index,omitempty"`
	NobleID     int            `json:"nobleID,omitempty"`
	PlayerNames []string       `json:"playerNames,omitempty"`
	DebugMode   *bool          `json:"debugMode,omitempty"` // nil 表示沿用房间当前的模式
}

// 自定义 HookFunc，把字符串转换成 int；带小数的数字不能当作 int
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if to != reflect.Int {
			return data, nil
		}
		switch from {
		case reflect.String:
			return strconv.Atoi(data.(string))
		case reflect.Float32, reflect.Float64:
			f := reflect.ValueOf(data).Float()
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("%v 不是整数", data)
			}
		}
		return data, nil
	}
}

// decodePayload 返回解码结果和 payload 中实际出现的字段
func decodePayload(payload map[string]interface{}) (dto.ActionPayload, map[string]bool, error) {
	var out dto.ActionPayload
	present := make(map[string]bool)
	if payload == nil {
		return out, present, nil
	}
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     &out,
		Metadata:   &md,
		TagName:    "json",
	})
	if err != nil {
		return out, nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return out, nil, err
	}
	for _, key := range md.Keys {
		present[key] = true
	}
	return out, present, nil
}

// 各类动作必须带的字段
var requiredFields = map[ActionType][]string{
	ActionTakeGems:    {"gems"},
	ActionReturnGems:  {"gems"},
	ActionBuyCard:     {"level", "cardID"},
	ActionReserveCard: {"level", "cardID"},
	ActionBuyReserved: {"index"},
	ActionSelectNoble: {"nobleID"},
}

// ParseAction 把客户端消息解码成 Action，格式错误统一返回 ErrBadAction
func ParseAction(req dto.ActionRequest) (Action, error) {
	p, present, err := decodePayload(req.Payload)
	if err != nil {
		return Action{}, fmt.Errorf("%w: payload 解析失败: %v", ErrBadAction, err)
	}

	action := Action{Type: ActionType(req.Type)}
	for _, field := range requiredFields[action.Type] {
		if !present[field] {
			return Action{}, fmt.Errorf("%w: %s 缺少字段 %s", ErrBadAction, req.Type, field)
		}
	}
	switch action.Type {
	case ActionTakeGems, ActionReturnGems:
		gems, err := entities.GemsFromMap(p.Gems)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %v", ErrBadAction, err)
		}
		action.Gems = gems
	case ActionBuyCard, ActionReserveCard:
		level, err := entities.ParseLevel(p.Level)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %v", ErrBadAction, err)
		}
		action.Level = level
		action.CardID = p.CardID
	case ActionBuyReserved:
		action.Index = p.Index
	case ActionSelectNoble:
		action.NobleID = p.NobleID
	case ActionEndTurn:
	case ActionRestartGame:
		action.PlayerNames = p.PlayerNames
		if present["debugMode"] {
			debug := p.DebugMode
			action.DebugMode = &debug
		}
	default:
		return Action{}, fmt.Errorf("%w: 未知的动作类型 %q", ErrBadAction, req.Type)
	}
	return action, nil
}
