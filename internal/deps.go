package internal

import (
	"memoknot/memo-api/internal/service"
	"memoknot/memo-api/pkg/kvstore"
	"memoknot/memo-api/pkg/security"

	"gorm.io/gorm"
)

// Deps holds everything handlers need. Built once in the router and passed
// down explicitly, so there are no package-level singletons to swap out in
// tests.
type Deps struct {
	DB    *gorm.DB
	KV    *kvstore.Memory
	Argon *security.ArgonHash
	Memos *service.MemoService
}
