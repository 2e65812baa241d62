package credentials

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Gunvolt24/kbatch/internal/ports"
)

// Проверка, что источники удовлетворяют интерфейсу порта.
var (
	_ ports.CredentialSource = Static(nil)
	_ ports.CredentialSource = FileSource{}
	_ ports.CredentialSource = EnvSource{}
	_ ports.CredentialSource = Chain(nil)
)

// Static — учётные данные в памяти (тело HTTP-запроса, тесты).
type Static map[string]any

func (s Static) Credentials(context.Context) (map[string]any, error) {
	if len(s) == 0 {
		return nil, ErrNotConfigured
	}
	return maps.Clone(s), nil
}

// FileSource — учётные данные из YAML-файла (JSON тоже подходит).
type FileSource struct {
	Path string
}

func (s FileSource) Credentials(context.Context) (map[string]any, error) {
	if s.Path == "" {
		return nil, ErrNotConfigured
	}

	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds map[string]any
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", s.Path, err)
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNotConfigured, s.Path)
	}
	return creds, nil
}

// envCredentials — указатели сохраняют разницу между "не задано" и "задано пустым/false".
// split_words вместо тега envconfig: без тега нет fallback на имя переменной без префикса.
type envCredentials struct {
	ClientID       *string `split_words:"true"`
	Brokers        *string `split_words:"true"`
	Authentication *string `split_words:"true"`
	Username       *string `split_words:"true"`
	Password       *string `split_words:"true"`
	SSL            *bool   `split_words:"true"`
	CA             *string `split_words:"true"`
	Cert           *string `split_words:"true"`
	Key            *string `split_words:"true"`
}

func (e *envCredentials) toMap() map[string]any {
	creds := make(map[string]any)
	putString := func(key string, v *string) {
		if v != nil {
			creds[key] = *v
		}
	}

	putString(KeyClientID, e.ClientID)
	putString(KeyBrokers, e.Brokers)
	putString(KeyAuthentication, e.Authentication)
	putString(KeyUsername, e.Username)
	putString(KeyPassword, e.Password)
	putString(KeyCA, e.CA)
	putString(KeyCert, e.Cert)
	putString(KeyKey, e.Key)
	if e.SSL != nil {
		creds[KeySSL] = *e.SSL
	}
	return creds
}

// EnvSource — учётные данные из переменных окружения <Prefix>_CLIENT_ID, <Prefix>_BROKERS и т.д.
type EnvSource struct {
	Prefix string
}

func (s EnvSource) Credentials(context.Context) (map[string]any, error) {
	var ec envCredentials
	if err := envconfig.Process(s.Prefix, &ec); err != nil {
		return nil, fmt.Errorf("read credentials from env: %w", err)
	}
	creds := ec.toMap()
	if len(creds) == 0 {
		return nil, ErrNotConfigured
	}
	return creds, nil
}

// Chain — первый источник, вернувший учётные данные, побеждает.
// Ошибка, отличная от ErrNotConfigured, прерывает перебор.
type Chain []ports.CredentialSource

func (c Chain) Credentials(ctx context.Context) (map[string]any, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		creds, err := src.Credentials(ctx)
		if err == nil {
			return creds, nil
		}
		if !errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
	}
	return nil, ErrNotConfigured
}
