package systemconfig

import "errors"

var (
	// ErrCacheMiss возвращается, когда конфигурации нет в кеше
	ErrCacheMiss = errors.New("systemconfig.cache: cache miss")

	// ErrCacheRead возвращается при ошибке чтения из redis
	ErrCacheRead = errors.New("systemconfig.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в redis
	ErrCacheWrite = errors.New("systemconfig.cache: failed to write")

	// ErrDecode возвращается, когда закешированное значение не разбирается
	ErrDecode = errors.New("systemconfig.cache: failed to decode")
)
