// Package guest implements the guest-mode memo store. It is the server-side
// rendition of what the browser would keep in local storage: one guest
// identity record plus a list of memos, both JSON blobs in a key-value
// substrate namespaced by the guest session.
package guest

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"memoknot/memo-api/pkg/kvstore"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const idCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	userKey  = "guest_user"
	memosKey = "guest_memos"
)

var (
	// ErrNoGuestUser means the session has no active guest identity
	ErrNoGuestUser = errors.New("no active guest user")
	// ErrNotFound means the memo doesn't exist or belongs to another guest
	ErrNotFound = errors.New("guest memo not found")
)

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

type Memo struct {
	ID        string   `json:"id"`
	GuestID   string   `json:"guest_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Images    []string `json:"images,omitempty"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

// Store gives one guest session CRUD access to its memos. All state lives in
// the injected key-value store, so swapping the substrate never touches this
// logic.
type Store struct {
	kv  kvstore.Store
	sid string
}

func NewStore(kv kvstore.Store, sessionID string) *Store {
	return &Store{kv: kv, sid: sessionID}
}

// CreateGuestUser generates a fresh guest identity and stores it, replacing
// whatever identity the session had before. Memos written under the old
// identity become invisible but stay stored until cleared.
func (s *Store) CreateGuestUser() (*User, error) {
	u := &User{
		ID:        fmt.Sprintf("guest_%d_%s", time.Now().UnixMilli(), gonanoid.MustGenerate(idCharset, 6)),
		Name:      "Guest",
		CreatedAt: time.Now().UnixMilli(),
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}

	s.kv.Set(s.key(userKey), string(raw))
	return u, nil
}

// GuestUser returns the active guest identity, or ErrNoGuestUser
func (s *Store) GuestUser() (*User, error) {
	raw, ok := s.kv.Get(s.key(userKey))
	if !ok {
		return nil, ErrNoGuestUser
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("corrupt guest user record, %w", err)
	}

	return &u, nil
}

// Memos returns the memos owned by the active guest identity. Records tagged
// with a stale guest id are skipped, not deleted.
func (s *Store) Memos() ([]Memo, error) {
	u, err := s.GuestUser()
	if err != nil {
		return nil, err
	}

	all, err := s.readMemos()
	if err != nil {
		return nil, err
	}

	memos := []Memo{}
	for _, m := range all {
		if m.GuestID == u.ID {
			memos = append(memos, m)
		}
	}

	return memos, nil
}

// CreateMemo appends a new memo owned by the active guest identity
func (s *Store) CreateMemo(title, content string, images []string) (*Memo, error) {
	u, err := s.GuestUser()
	if err != nil {
		return nil, err
	}

	all, err := s.readMemos()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	m := Memo{
		ID:        fmt.Sprintf("guest_memo_%d_%s", now, gonanoid.MustGenerate(idCharset, 6)),
		GuestID:   u.ID,
		Title:     title,
		Content:   content,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.writeMemos(append(all, m)); err != nil {
		return nil, err
	}

	return &m, nil
}

// Memo looks up a single memo by id among the active identity's memos
func (s *Store) Memo(id string) (*Memo, error) {
	memos, err := s.Memos()
	if err != nil {
		return nil, err
	}

	for _, m := range memos {
		if m.ID == id {
			return &m, nil
		}
	}

	return nil, ErrNotFound
}

// UpdateMemo replaces title and content and refreshes the updated timestamp.
// ID, creation time and images are preserved.
func (s *Store) UpdateMemo(id, title, content string) (*Memo, error) {
	u, err := s.GuestUser()
	if err != nil {
		return nil, err
	}

	all, err := s.readMemos()
	if err != nil {
		return nil, err
	}

	for i, m := range all {
		if m.ID != id || m.GuestID != u.ID {
			continue
		}

		all[i].Title = title
		all[i].Content = content
		all[i].UpdatedAt = time.Now().UnixMilli()

		if err := s.writeMemos(all); err != nil {
			return nil, err
		}

		return &all[i], nil
	}

	return nil, ErrNotFound
}

// DeleteMemo removes a memo by id. ErrNotFound when nothing was removed.
func (s *Store) DeleteMemo(id string) error {
	u, err := s.GuestUser()
	if err != nil {
		return err
	}

	all, err := s.readMemos()
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, m := range all {
		if m.ID == id && m.GuestID == u.ID {
			continue
		}
		kept = append(kept, m)
	}

	if len(kept) == len(all) {
		return ErrNotFound
	}

	return s.writeMemos(kept)
}

// ClearMemos deletes every memo tagged with the given guest id, leaving
// records of other identities in place
func (s *Store) ClearMemos(guestID string) error {
	all, err := s.readMemos()
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, m := range all {
		if m.GuestID != guestID {
			kept = append(kept, m)
		}
	}

	return s.writeMemos(kept)
}

// ClearAll tears down the whole guest session: identity record and memo list
func (s *Store) ClearAll() {
	s.kv.Delete(s.key(userKey))
	s.kv.Delete(s.key(memosKey))

	zap.L().Debug("Guest session cleared", zap.String("sessionID", s.sid))
}

func (s *Store) key(name string) string {
	return s.sid + ":" + name
}

func (s *Store) readMemos() ([]Memo, error) {
	raw, ok := s.kv.Get(s.key(memosKey))
	if !ok {
		return []Memo{}, nil
	}

	var memos []Memo
	if err := json.Unmarshal([]byte(raw), &memos); err != nil {
		return nil, fmt.Errorf("corrupt guest memo list, %w", err)
	}

	return memos, nil
}

func (s *Store) writeMemos(memos []Memo) error {
	raw, err := json.Marshal(memos)
	if err != nil {
		return err
	}

	s.kv.Set(s.key(memosKey), string(raw))
	return nil
}
