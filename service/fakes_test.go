package service

import (
	"context"
	"errors"
	"sync"

	"gem-game/engine"
	"gem-game/entities"
)

type fakeStore struct {
	mu          sync.Mutex
	infos       map[string]entities.RoomInfo
	snapshots   map[string]engine.Snapshot
	lastActions []entities.LastAction
	deleted     []string
	failSaves   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		infos:     make(map[string]entities.RoomInfo),
		snapshots: make(map[string]engine.Snapshot),
	}
}

var errStoreDown = errors.New("store down")

func (s *fakeStore) SaveRoomInfo(_ context.Context, info entities.RoomInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		return errStoreDown
	}
	s.infos[info.RoomID] = info
	return nil
}

func (s *fakeStore) SaveSnapshot(_ context.Context, roomID string, snap engine.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		return errStoreDown
	}
	s.snapshots[roomID] = snap
	return nil
}

func (s *fakeStore) SaveLastAction(_ context.Context, _ string, action entities.LastAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSaves {
		return errStoreDown
	}
	s.lastActions = append(s.lastActions, action)
	return nil
}

func (s *fakeStore) DeleteRoom(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.infos, roomID)
	delete(s.snapshots, roomID)
	s.deleted = append(s.deleted, roomID)
	return nil
}

type fakeArchive struct {
	results []entities.GameResult
}

func (a *fakeArchive) SaveResult(_ context.Context, result entities.GameResult) error {
	a.results = append(a.results, result)
	return nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	sent   map[string]int
	conns  map[string]int
	closed []string
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{sent: make(map[string]int), conns: make(map[string]int)}
}

func (b *fakeBroadcaster) Broadcast(roomID string, _ engine.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent[roomID]++
}

func (b *fakeBroadcaster) ConnCount(roomID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conns[roomID]
}

func (b *fakeBroadcaster) CloseRoom(roomID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, roomID)
}

func (b *fakeBroadcaster) count(roomID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sent[roomID]
}
