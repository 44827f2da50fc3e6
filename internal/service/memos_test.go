package service

import (
	"fmt"
	"testing"

	"memoknot/memo-api/internal/guest"
	"memoknot/memo-api/internal/model"
	"memoknot/memo-api/internal/session"
	"memoknot/memo-api/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Memo{}))

	return db
}

func newTestService(t *testing.T) (*MemoService, *kvstore.Memory) {
	t.Helper()

	kv := kvstore.NewMemory()
	return NewMemoService(newTestDB(t), kv), kv
}

func userSession(id string) session.Session {
	return session.Session{UserID: id}
}

func guestSession(t *testing.T, kv *kvstore.Memory) session.Session {
	t.Helper()

	// the guest store namespace doubles as the session's user id
	st := guest.NewStore(kv, "guest_sess")
	_, err := st.CreateGuestUser()
	require.NoError(t, err)

	return session.Session{UserID: "guest_sess", IsGuest: true}
}

func seedMemos(t *testing.T, s *MemoService, sess session.Session, n int) []model.Memo {
	t.Helper()

	memos := make([]model.Memo, 0, n)
	for i := 0; i < n; i++ {
		m, err := s.Create(sess, fmt.Sprintf("Memo %d", i), fmt.Sprintf("content %d", i), nil)
		require.NoError(t, err)
		memos = append(memos, *m)
	}

	// spread timestamps so ordering is deterministic
	if !sess.IsGuest {
		for i, m := range memos {
			ts := int64(1_000_000 + i*1000)
			require.NoError(t, s.db.Model(model.Memo{}).Where("id = ?", m.ID).
				Updates(map[string]any{"created_at": ts, "updated_at": ts}).Error)
			memos[i].CreatedAt = ts
			memos[i].UpdatedAt = ts
		}
	}

	return memos
}

func TestCreateAndGet_Persistent(t *testing.T) {
	s, _ := newTestService(t)
	sess := userSession("user_a")

	m, err := s.Create(sess, "title", "content", []string{"https://img.example/a.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)

	got, err := s.Get(sess, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
	assert.Equal(t, model.StringSlice{"https://img.example/a.png"}, got.Images)
}

func TestGet_OtherOwnerLooksAbsent(t *testing.T) {
	s, _ := newTestService(t)

	m, err := s.Create(userSession("user_a"), "private", "content", nil)
	require.NoError(t, err)

	_, err = s.Get(userSession("user_b"), m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the owner still sees it
	_, err = s.Get(userSession("user_a"), m.ID)
	assert.NoError(t, err)
}

func TestUpdate_Persistent(t *testing.T) {
	s, _ := newTestService(t)
	sess := userSession("user_a")

	m, err := s.Create(sess, "before", "old", nil)
	require.NoError(t, err)

	// force a visibly older timestamp
	require.NoError(t, s.db.Model(model.Memo{}).Where("id = ?", m.ID).
		Updates(map[string]any{"created_at": int64(1000), "updated_at": int64(1000)}).Error)

	updated, err := s.Update(sess, m.ID, "after", "new")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "new", updated.Content)
	assert.Greater(t, updated.UpdatedAt, int64(1000))

	got, err := s.Get(sess, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, int64(1000), got.CreatedAt)
}

func TestUpdate_WrongOwner(t *testing.T) {
	s, _ := newTestService(t)

	m, err := s.Create(userSession("user_a"), "t", "c", nil)
	require.NoError(t, err)

	_, err = s.Update(userSession("user_b"), m.ID, "hijacked", "c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Persistent(t *testing.T) {
	s, _ := newTestService(t)
	sess := userSession("user_a")

	m, err := s.Create(sess, "t", "c", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(userSession("user_b"), m.ID), ErrNotFound)
	require.NoError(t, s.Delete(sess, m.ID))
	assert.ErrorIs(t, s.Delete(sess, m.ID), ErrNotFound)
}

func TestList_PaginationPersistent(t *testing.T) {
	s, _ := newTestService(t)
	sess := userSession("user_a")
	seedMemos(t, s, sess, 10)

	first, err := s.List(sess, ListOptions{Limit: 9})
	require.NoError(t, err)
	require.Len(t, first.Items, 9)
	assert.Equal(t, first.Items[8].ID, first.NextCursor)

	// newest update first
	for i := 1; i < len(first.Items); i++ {
		assert.GreaterOrEqual(t, first.Items[i-1].UpdatedAt, first.Items[i].UpdatedAt)
	}

	second, err := s.List(sess, ListOptions{Limit: 9, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[string]bool{}
	for _, m := range first.Items {
		seen[m.ID] = true
	}
	assert.False(t, seen[second.Items[0].ID])
}

func TestList_UnknownCursorFallsBackToFirstPage(t *testing.T) {
	s, _ := newTestService(t)
	sess := userSession("user_a")
	memos := seedMemos(t, s, sess, 5)

	page, err := s.List(sess, ListOptions{Limit: 3, Cursor: "no_such_id"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, memos[4].ID, page.Items[0].ID)
}

func TestList_SearchPersistent(t *testing.T) {
	s, _ := newTestService(t)
	sess := userSession("user_a")

	_, err := s.Create(sess, "Shopping list", "milk and eggs", nil)
	require.NoError(t, err)
	_, err = s.Create(sess, "Ideas", "build a SHOPPING cart", nil)
	require.NoError(t, err)
	_, err = s.Create(sess, "Diary", "nothing happened", nil)
	require.NoError(t, err)

	page, err := s.List(sess, ListOptions{Query: "shopping", Limit: 9})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestGuestBranch_CRUDAndList(t *testing.T) {
	s, kv := newTestService(t)
	sess := guestSession(t, kv)

	m, err := s.Create(sess, "guest memo", "written before registering", nil)
	require.NoError(t, err)
	assert.Contains(t, m.ID, "guest_memo_")

	got, err := s.Get(sess, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "guest memo", got.Title)

	updated, err := s.Update(sess, m.ID, "renamed", "still mine")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	page, err := s.List(sess, ListOptions{Limit: 9})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Empty(t, page.NextCursor)

	require.NoError(t, s.Delete(sess, m.ID))
	assert.ErrorIs(t, s.Delete(sess, m.ID), ErrNotFound)
}

func TestGuestBranch_SearchMatchesPersistentContract(t *testing.T) {
	s, kv := newTestService(t)
	sess := guestSession(t, kv)

	_, err := s.Create(sess, "Shopping list", "milk", nil)
	require.NoError(t, err)
	_, err = s.Create(sess, "Diary", "nothing", nil)
	require.NoError(t, err)

	page, err := s.List(sess, ListOptions{Query: "SHOP", Limit: 9})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Shopping list", page.Items[0].Title)
}

func TestGuestBranch_EvictedSession(t *testing.T) {
	s, kv := newTestService(t)
	sess := guestSession(t, kv)

	kv.DeletePrefix(sess.UserID + ":")

	_, err := s.Create(sess, "t", "c", nil)
	assert.ErrorIs(t, err, ErrNoSession)
}
