package apperrors

import "errors"

// Типизированные ошибки домена. Репозитории и сервисы оборачивают их через
// fmt.Errorf("...: %w", ...), хендлеры сопоставляют через errors.Is.
var (
	ErrNotFound     = errors.New("не найдено")
	ErrUnauthorized = errors.New("требуется авторизация")
	ErrForbidden    = errors.New("доступ запрещен")
	ErrConflict     = errors.New("конфликт уникальных данных")
	ErrUpstream     = errors.New("ошибка внешнего сервиса")
)
