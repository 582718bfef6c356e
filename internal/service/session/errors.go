package session

import "errors"

var (
	// ErrInternal возвращается при ошибках хранилища сессий
	ErrInternal = errors.New("session: internal error")
)
