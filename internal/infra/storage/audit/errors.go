package audit

import "errors"

var (
	// ErrAppend возвращается при ошибке дозаписи в журнал
	ErrAppend = errors.New("audit: failed to append record")
)
