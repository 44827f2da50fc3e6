package validators

import (
	"errors"
	"net/url"
)

const (
	maxTitleLen   = 100
	maxContentLen = 10000
)

var (
	ErrTitleEmpty     = errors.New("title can't be empty")
	ErrTitleTooLong   = errors.New("title can't be longer than 100 characters")
	ErrContentEmpty   = errors.New("content can't be empty")
	ErrContentTooLong = errors.New("content can't be longer than 10000 characters")
	ErrImageURLBad    = errors.New("images must be valid URLs")
)

// MemoValidator checks the user-writable memo fields. Lengths are counted in
// bytes, matching the column sizes.
func MemoValidator(title, content string, images []string) error {
	if title == "" {
		return ErrTitleEmpty
	}

	if len(title) > maxTitleLen {
		return ErrTitleTooLong
	}

	if content == "" {
		return ErrContentEmpty
	}

	if len(content) > maxContentLen {
		return ErrContentTooLong
	}

	for _, img := range images {
		u, err := url.Parse(img)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrImageURLBad
		}
	}

	return nil
}
