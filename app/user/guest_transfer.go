package user

import (
	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/guest"
	"memoknot/memo-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pendingGuestMemos picks up the guest session the caller was using before
// logging in or registering, if any. The auth_token cookie still holds the
// guest token at that point. Returns the store so the caller can tear the
// session down once the transfer committed.
func pendingGuestMemos(c *gin.Context, d *internal.Deps) (*guest.Store, []guest.Memo) {
	tokenStr, err := c.Cookie("auth_token")
	if err != nil {
		return nil, nil
	}

	sess, err := middleware.ResolveSession(d.DB, tokenStr)
	if err != nil || !sess.IsGuest {
		return nil, nil
	}

	store := guest.NewStore(d.KV, sess.UserID)

	memos, err := store.Memos()
	if err != nil {
		// Evicted or corrupt guest state. Nothing to carry over.
		zap.L().Debug("No guest memos to transfer", zap.Error(err))
		return nil, nil
	}

	return store, memos
}
