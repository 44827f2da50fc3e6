package service

import (
	"errors"
	"strings"
	"time"

	"memoknot/memo-api/internal/guest"
	"memoknot/memo-api/internal/model"
	"memoknot/memo-api/internal/session"
	"memoknot/memo-api/pkg/kvstore"
	"memoknot/memo-api/pkg/memoutil"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ListOptions are the knobs of a memo listing: an optional case-insensitive
// search query, the id of the last memo of the previous page, and a page size
type ListOptions struct {
	Query  string
	Cursor string
	Limit  int
}

// MemoService is the single dispatch point for memo CRUD. Guest sessions are
// served from the key-value guest store with in-memory filtering; everyone
// else hits the database, which does the same filtering natively. The service
// keeps no state between calls.
type MemoService struct {
	db *gorm.DB
	kv kvstore.Store
}

func NewMemoService(db *gorm.DB, kv kvstore.Store) *MemoService {
	return &MemoService{db: db, kv: kv}
}

// List returns one page of the caller's memos, newest update first
func (s *MemoService) List(sess session.Session, opts ListOptions) (memoutil.Page, error) {
	if opts.Limit <= 0 {
		opts.Limit = memoutil.DefaultPageLimit
	}

	if sess.IsGuest {
		return s.listGuest(sess, opts)
	}

	return s.listPersistent(sess, opts)
}

func (s *MemoService) listGuest(sess session.Session, opts ListOptions) (memoutil.Page, error) {
	raw, err := s.guestStore(sess).Memos()
	if err != nil {
		return memoutil.Page{}, mapGuestErr(err)
	}

	memos := make([]model.Memo, 0, len(raw))
	for _, m := range raw {
		memos = append(memos, fromGuest(m))
	}

	if opts.Query != "" {
		memos = memoutil.Search(memos, opts.Query)
	}

	return memoutil.Paginate(memoutil.SortByDate(memos), opts.Cursor, opts.Limit), nil
}

func (s *MemoService) listPersistent(sess session.Session, opts ListOptions) (memoutil.Page, error) {
	q := s.db.
		Where("user_id = ?", sess.UserID).
		Order("updated_at desc, id desc")

	if opts.Query != "" {
		pattern := "%" + strings.ToLower(opts.Query) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", pattern, pattern)
	}

	if opts.Cursor != "" {
		// Resume right after the cursor row. A cursor that doesn't resolve
		// falls back to the first page, same as the in-memory variant.
		var cur model.Memo
		err := s.db.
			Where("user_id = ? AND id = ?", sess.UserID, opts.Cursor).
			First(&cur).
			Error
		if err == nil {
			q = q.Where("(updated_at < ? OR (updated_at = ? AND id < ?))", cur.UpdatedAt, cur.UpdatedAt, cur.ID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return memoutil.Page{}, err
		}
	}

	memos := []model.Memo{}
	if err := q.Limit(opts.Limit).Find(&memos).Error; err != nil {
		return memoutil.Page{}, err
	}

	page := memoutil.Page{Items: memos}
	if len(memos) == opts.Limit {
		page.NextCursor = memos[len(memos)-1].ID
	}

	return page, nil
}

// Create stores a new memo owned by the caller. Input is expected to have
// passed validation already.
func (s *MemoService) Create(sess session.Session, title, content string, images []string) (*model.Memo, error) {
	if sess.IsGuest {
		m, err := s.guestStore(sess).CreateMemo(title, content, images)
		if err != nil {
			return nil, mapGuestErr(err)
		}

		out := fromGuest(*m)
		return &out, nil
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	memo := model.Memo{
		ID:        id,
		UserID:    sess.UserID,
		Title:     title,
		Content:   content,
		Images:    model.StringSlice(images),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.Create(&memo).Error; err != nil {
		return nil, err
	}

	return &memo, nil
}

// Get fetches one memo. A memo owned by another caller comes back as
// ErrNotFound, never as a distinct forbidden error.
func (s *MemoService) Get(sess session.Session, id string) (*model.Memo, error) {
	if sess.IsGuest {
		m, err := s.guestStore(sess).Memo(id)
		if err != nil {
			return nil, mapGuestErr(err)
		}

		out := fromGuest(*m)
		return &out, nil
	}

	var memo model.Memo
	err := s.db.
		Where("user_id = ? AND id = ?", sess.UserID, id).
		First(&memo).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &memo, nil
}

// Update replaces title and content of an owned memo and refreshes its
// updated timestamp. Images are left as they are.
func (s *MemoService) Update(sess session.Session, id, title, content string) (*model.Memo, error) {
	if sess.IsGuest {
		m, err := s.guestStore(sess).UpdateMemo(id, title, content)
		if err != nil {
			return nil, mapGuestErr(err)
		}

		out := fromGuest(*m)
		return &out, nil
	}

	memo, err := s.Get(sess, id)
	if err != nil {
		return nil, err
	}

	memo.Title = title
	memo.Content = content
	memo.UpdatedAt = time.Now().UnixMilli()

	err = s.db.
		Model(model.Memo{}).
		Where("id = ?", memo.ID).
		Updates(map[string]any{
			"title":      memo.Title,
			"content":    memo.Content,
			"updated_at": memo.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}

	return memo, nil
}

// Delete removes an owned memo, ErrNotFound when there is nothing to remove
func (s *MemoService) Delete(sess session.Session, id string) error {
	if sess.IsGuest {
		return mapGuestErr(s.guestStore(sess).DeleteMemo(id))
	}

	r := s.db.
		Where("user_id = ? AND id = ?", sess.UserID, id).
		Delete(model.Memo{})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *MemoService) guestStore(sess session.Session) *guest.Store {
	return guest.NewStore(s.kv, sess.UserID)
}

func fromGuest(m guest.Memo) model.Memo {
	return model.Memo{
		ID:        m.ID,
		UserID:    m.GuestID,
		Title:     m.Title,
		Content:   m.Content,
		Images:    model.StringSlice(m.Images),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func mapGuestErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, guest.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, guest.ErrNoGuestUser):
		return ErrNoSession
	default:
		return err
	}
}
