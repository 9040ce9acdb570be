// Package registry tracks which live connection currently represents which
// user in which chat room, and fans messages out to them. It owns no
// sockets: connections are opened, authorized and closed by the transport
// layer, which hands the registry a non-owning handle per user.
package registry

import (
	"encoding/json"
	"sync"

	"github.com/BlackYHawk/react-food-AI-sub000/logger"
)

// Conn is a live bidirectional channel as the registry sees it. Send must be
// safe for concurrent use; IsOpen is a transient check, not a guarantee the
// next Send succeeds.
type Conn interface {
	Send(data []byte) error
	IsOpen() bool
}

type userEntry struct {
	conn   Conn
	roomID string
}

// Registry maps users to rooms and connections. One active connection per
// user: registering a user again replaces the previous bookkeeping without
// closing the prior socket. All mutation goes through the methods below,
// under one lock, so byUser and byRoom stay consistent with each other.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]userEntry
	byRoom map[string]map[string]Conn
}

func New() *Registry {
	return &Registry{
		byUser: make(map[string]userEntry),
		byRoom: make(map[string]map[string]Conn),
	}
}

// AddToRoom registers conn as userID's connection in roomID, overwriting any
// existing entry for the user. If the user was registered in a different
// room, that room's entry is not cleaned up here; callers re-registering a
// user are expected to call RemoveFromRoom first.
func (r *Registry) AddToRoom(roomID, userID string, conn Conn) {
	if roomID == "" || userID == "" || conn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.byRoom[roomID]
	if room == nil {
		room = make(map[string]Conn)
		r.byRoom[roomID] = room
	}
	room[userID] = conn
	r.byUser[userID] = userEntry{conn: conn, roomID: roomID}
}

// RemoveFromRoom drops userID's registration. The room entry is deleted
// entirely when its last user leaves. No-op for unknown users; idempotent.
func (r *Registry) RemoveFromRoom(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byUser[userID]
	if !ok {
		return
	}
	delete(r.byUser, userID)
	if room := r.byRoom[e.roomID]; room != nil {
		delete(room, userID)
		if len(room) == 0 {
			delete(r.byRoom, e.roomID)
		}
	}
}

// BroadcastToRoom sends payload, JSON-encoded once, to every open connection
// in roomID except excludeUserID ("" excludes nobody). A send failure on one
// connection never aborts delivery to the rest. Unknown or empty rooms are a
// silent no-op.
func (r *Registry) BroadcastToRoom(roomID string, payload any, excludeUserID string) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("[registry] marshal broadcast payload room=%s err=%v", roomID, err)
		return
	}

	type recipient struct {
		userID string
		conn   Conn
	}
	r.mu.RLock()
	room := r.byRoom[roomID]
	targets := make([]recipient, 0, len(room))
	for uid, c := range room {
		if uid == excludeUserID {
			continue
		}
		targets = append(targets, recipient{userID: uid, conn: c})
	}
	r.mu.RUnlock()

	for _, t := range targets {
		if !t.conn.IsOpen() {
			continue
		}
		if err := t.conn.Send(data); err != nil {
			logger.Warnf("[registry] broadcast send failed room=%s user=%s err=%v", roomID, t.userID, err)
		}
	}
}

// SendToUser delivers payload to userID's current connection, if any and
// open. A user with no connection is the normal steady state, not an error.
func (r *Registry) SendToUser(userID string, payload any) {
	r.mu.RLock()
	e, ok := r.byUser[userID]
	r.mu.RUnlock()
	if !ok || !e.conn.IsOpen() {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("[registry] marshal unicast payload user=%s err=%v", userID, err)
		return
	}
	if err := e.conn.Send(data); err != nil {
		logger.Warnf("[registry] unicast send failed user=%s err=%v", userID, err)
	}
}

// RoomUserCount returns the number of distinct users registered in roomID,
// 0 for unknown rooms.
func (r *Registry) RoomUserCount(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byRoom[roomID])
}

// UserRoom reports which room userID is currently registered in.
func (r *Registry) UserRoom(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byUser[userID]
	return e.roomID, ok
}

// Stats returns the current number of rooms and registered users.
func (r *Registry) Stats() (rooms, users int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byRoom), len(r.byUser)
}
