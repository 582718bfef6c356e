package dashboard

import "errors"

var (
	// ErrUpstream запрос к PreTest API прерван (например, сессия истекла)
	ErrUpstream = errors.New("dashboard: upstream error")
)
