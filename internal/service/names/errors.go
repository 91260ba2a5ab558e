package names

import "errors"

var (
	// ErrInvalidName возвращается, когда имя пустое после нормализации,
	// превышает допустимую длину или содержит запрещённое слово
	ErrInvalidName = errors.New("names: invalid display name")
)
