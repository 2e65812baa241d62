package ports

import "context"

// CredentialSource — внешний источник учётных данных (ключ-значение).
// Отсутствие учётных данных сообщается ошибкой и не считается сбоем выполнения.
type CredentialSource interface {
	Credentials(ctx context.Context) (map[string]any, error)
}
