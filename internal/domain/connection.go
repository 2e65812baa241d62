package domain

// Mechanism — механизм SASL-аутентификации. Значение передаётся как есть,
// проверка написания выполняется уже в адаптере брокера.
type Mechanism string

const (
	MechanismPlain       Mechanism = "plain"
	MechanismScramSHA256 Mechanism = "scram-sha-256"
	MechanismScramSHA512 Mechanism = "scram-sha-512"
)

// AuthConfig — параметры SASL.
type AuthConfig struct {
	Mechanism Mechanism
	Username  string
	Password  string
}

// TLSConfig — параметры TLS. Пустая строка в CA/Cert/Key означает отсутствие значения.
type TLSConfig struct {
	RejectUnauthorized bool
	CA                 string
	Cert               string
	Key                string
}

// ConnectionConfig — конфигурация подключения к брокеру на одно выполнение.
// Auth и TLS равны nil, если соответствующие поля не были переданы в credentials.
type ConnectionConfig struct {
	ClientID string
	Brokers  []string
	Auth     *AuthConfig
	TLS      *TLSConfig
}
