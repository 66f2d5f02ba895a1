package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gem-game/entities"

	"github.com/go-sql-driver/mysql"
)

const createResultsTable = `CREATE TABLE IF NOT EXISTS game_results (
	id          BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id     VARCHAR(32) NOT NULL,
	winner      INT NOT NULL,
	winner_name VARCHAR(64) NOT NULL,
	players     JSON NOT NULL,
	scores      JSON NOT NULL,
	rounds      INT NOT NULL,
	debug_mode  BOOLEAN NOT NULL,
	finished_at DATETIME NOT NULL,
	INDEX idx_room (room_id)
)`

const insertResult = `INSERT INTO game_results
	(room_id, winner, winner_name, players, scores, rounds, debug_mode, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// ResultArchive 把结束的对局写入 MySQL
type ResultArchive struct {
	db *sql.DB
}

// normalizeDSN 校验 DSN，并强制 parseTime 与 UTC
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("MYSQL_DSN 格式错误: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

func OpenResultArchive(ctx context.Context, dsn string) (*ResultArchive, error) {
	normalized, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("打开 MySQL 失败: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("MySQL 连接失败: %w", err)
	}
	if _, err := db.ExecContext(ctx, createResultsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("创建 game_results 表失败: %w", err)
	}
	return &ResultArchive{db: db}, nil
}

func resultArgs(result entities.GameResult) ([]interface{}, error) {
	players, err := json.Marshal(result.Players)
	if err != nil {
		return nil, fmt.Errorf("序列化玩家失败: %w", err)
	}
	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return nil, fmt.Errorf("序列化分数失败: %w", err)
	}
	return []interface{}{
		result.RoomID,
		result.Winner,
		result.WinnerName,
		string(players),
		string(scores),
		result.Rounds,
		result.DebugMode,
		result.FinishedAt.UTC(),
	}, nil
}

func (a *ResultArchive) SaveResult(ctx context.Context, result entities.GameResult) error {
	args, err := resultArgs(result)
	if err != nil {
		return err
	}
	if _, err := a.db.ExecContext(ctx, insertResult, args...); err != nil {
		return fmt.Errorf("保存对局结果失败: %w", err)
	}
	return nil
}

func (a *ResultArchive) Close() error {
	return a.db.Close()
}
