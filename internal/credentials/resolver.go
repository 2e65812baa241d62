// Пакет credentials — сборка конфигурации подключения из необязательных учётных данных хоста.
// Отсутствие учётных данных — штатный режим: подключение без аутентификации и без TLS.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

const (
	DefaultClientID = "kbatch-trigger"
	DefaultBroker   = "localhost:9092"
)

// Ключи объекта учётных данных.
const (
	KeyClientID       = "clientId"
	KeyBrokers        = "brokers"
	KeyAuthentication = "authentication"
	KeyUsername       = "username"
	KeyPassword       = "password"
	KeySSL            = "ssl"
	KeyCA             = "ca"
	KeyCert           = "cert"
	KeyKey            = "key"
)

// ErrNotConfigured — источник не содержит учётных данных.
var ErrNotConfigured = errors.New("credentials not configured")

// Fetch — достаёт учётные данные из источника. nil-источник равен отсутствию данных.
func Fetch(ctx context.Context, src ports.CredentialSource) (map[string]any, error) {
	if src == nil {
		return nil, ErrNotConfigured
	}
	return src.Credentials(ctx)
}

// Resolve — Fetch + FromCredentials. Любая ошибка получения трактуется как
// "учётных данных нет" и наружу не выходит.
func Resolve(ctx context.Context, src ports.CredentialSource) domain.ConnectionConfig {
	return ResolveWith(ctx, src, nil)
}

// ResolveWith — как Resolve, но ошибка получения (включая ErrNotConfigured)
// передаётся в onErr перед откатом на настройки по умолчанию.
func ResolveWith(ctx context.Context, src ports.CredentialSource, onErr func(error)) domain.ConnectionConfig {
	creds, err := Fetch(ctx, src)
	if err != nil {
		if onErr != nil {
			onErr(err)
		}
		return FromCredentials(nil)
	}
	return FromCredentials(creds)
}

// FromCredentials — чистое преобразование учётных данных в ConnectionConfig.
func FromCredentials(creds map[string]any) domain.ConnectionConfig {
	return domain.ConnectionConfig{
		ClientID: clientID(creds),
		Brokers:  brokers(creds),
		Auth:     authConfig(creds),
		TLS:      tlsConfig(creds),
	}
}

func clientID(creds map[string]any) string {
	if id, ok := stringValue(creds, KeyClientID); ok && id != "" {
		return id
	}
	return DefaultClientID
}

// brokers: строка делится по запятой с обрезкой пробелов, список берётся как есть.
// Пустые элементы отбрасываются; пустой результат — брокер по умолчанию.
func brokers(creds map[string]any) []string {
	var list []string

	switch v := creds[KeyBrokers].(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			list = appendNonEmpty(list, strings.TrimSpace(part))
		}
	case []string:
		for _, b := range v {
			list = appendNonEmpty(list, b)
		}
	case []any:
		for _, b := range v {
			if b != nil {
				list = appendNonEmpty(list, fmt.Sprint(b))
			}
		}
	}

	if len(list) == 0 {
		return []string{DefaultBroker}
	}
	return list
}

func authConfig(creds map[string]any) *domain.AuthConfig {
	mechanism, ok := stringValue(creds, KeyAuthentication)
	if !ok || mechanism == "" {
		return nil
	}
	username, _ := stringValue(creds, KeyUsername)
	password, _ := stringValue(creds, KeyPassword)

	return &domain.AuthConfig{
		Mechanism: domain.Mechanism(mechanism),
		Username:  username,
		Password:  password,
	}
}

// tlsConfig: ключ ssl проверяется на наличие, а не на истинность —
// ssl=false означает "не отвергать неподтверждённые сертификаты".
func tlsConfig(creds map[string]any) *domain.TLSConfig {
	raw, ok := creds[KeySSL]
	if !ok || raw == nil {
		return nil
	}

	ca, _ := stringValue(creds, KeyCA)
	cert, _ := stringValue(creds, KeyCert)
	key, _ := stringValue(creds, KeyKey)

	return &domain.TLSConfig{
		RejectUnauthorized: boolValue(raw),
		CA:                 ca,
		Cert:               cert,
		Key:                key,
	}
}

// ------вспомогательные функции------

func stringValue(creds map[string]any, key string) (string, bool) {
	v, ok := creds[key]
	if !ok || v == nil {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}

func boolValue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	case int:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

func appendNonEmpty(list []string, s string) []string {
	if s == "" {
		return list
	}
	return append(list, s)
}
