package engine

import (
	"errors"
	"fmt"
)

// 以下错误都是玩家的非法操作，返回时状态不会有任何改动
var (
	ErrInvalidSelection        = errors.New("宝石选择不合法")
	ErrCapExceeded             = errors.New("超过上限")
	ErrReservationLimitReached = fmt.Errorf("预留卡已满: %w", ErrCapExceeded)
	ErrInsufficientResources   = errors.New("宝石不足")
	ErrInvalidIndex            = errors.New("下标越界")
	ErrCardNotAvailable        = errors.New("卡牌不在桌面上")
	ErrNobleNotAvailable       = errors.New("贵族不在贵族池中")
	ErrNobleNotEligible        = errors.New("不满足贵族条件")
	ErrActionAlreadyTaken      = errors.New("本回合已经行动过")
	ErrGameOver                = errors.New("游戏已结束")
)

// 调用方用法错误
var (
	ErrInvalidPlayerCount = errors.New("玩家人数错误")
	ErrNotInitialized     = errors.New("游戏尚未初始化")
)
