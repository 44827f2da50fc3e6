package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("Bob <bob@example.com>"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator(strings.Repeat("a", 250)+"@example.com"), ErrEmailTooLong)
	assert.NoError(t, EmailValidator("user@example.com"))
}

func TestPasswordValidator(t *testing.T) {
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
	assert.NoError(t, PasswordValidator("secret1"))
}

func TestMemoValidator(t *testing.T) {
	assert.ErrorIs(t, MemoValidator("", "content", nil), ErrTitleEmpty)
	assert.ErrorIs(t, MemoValidator(strings.Repeat("t", 101), "content", nil), ErrTitleTooLong)
	assert.ErrorIs(t, MemoValidator("title", "", nil), ErrContentEmpty)
	assert.ErrorIs(t, MemoValidator("title", strings.Repeat("c", 10001), nil), ErrContentTooLong)
	assert.ErrorIs(t, MemoValidator("title", "content", []string{"%%bad"}), ErrImageURLBad)
	assert.ErrorIs(t, MemoValidator("title", "content", []string{"relative/path.png"}), ErrImageURLBad)
	assert.NoError(t, MemoValidator("title", "content", []string{"https://img.example/a.png"}))
	assert.NoError(t, MemoValidator("title", "content", nil))
}
