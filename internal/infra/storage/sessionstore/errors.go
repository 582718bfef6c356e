package sessionstore

import "errors"

var (
	// ErrNotFound возвращается, когда ключа нет в сессии
	ErrNotFound = errors.New("sessionstore: key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sessionstore: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sessionstore: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sessionstore: failed to scan row")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("sessionstore: redis error")
)
