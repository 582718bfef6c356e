package countdown

import "errors"

var (
	// ErrUpstream не удалось получить бронирования (цепочка содержит исходную ошибку клиента)
	ErrUpstream = errors.New("countdown: upstream error")
)
