package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

var (
	ErrUnsupportedMechanism = errors.New("unsupported sasl mechanism")
	ErrNoBrokers            = errors.New("no brokers configured")
)

var _ ports.BrokerConnector = (*Connector)(nil)

// brokerConn — соединение с брокером для запросов метаданных (*kafka.Conn).
type brokerConn interface {
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	SetDeadline(t time.Time) error
	Close() error
}

type dialFunc func(ctx context.Context, d *kafka.Dialer, address string) (brokerConn, error)

func dialTCP(ctx context.Context, d *kafka.Dialer, address string) (brokerConn, error) {
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Connector — открывает подключение к кластеру на одно выполнение.
type Connector struct {
	opts      ClientOptions
	log       ports.Logger
	dial      dialFunc
	newReader func(kafka.ReaderConfig) reader
}

func NewConnector(opts ClientOptions, log ports.Logger) *Connector {
	return &Connector{
		opts: opts.withDefaults(),
		log:  log,
		dial: dialTCP,
		newReader: func(rc kafka.ReaderConfig) reader {
			return kafka.NewReader(rc)
		},
	}
}

// Connect — строит Dialer (SASL/TLS) и подключается к первому ответившему брокеру.
func (c *Connector) Connect(ctx context.Context, cfg domain.ConnectionConfig, opts domain.ConsumerOptions) (ports.BrokerConsumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	dialer, err := c.dialer(cfg)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, broker := range cfg.Brokers {
		conn, err := c.dial(ctx, dialer, broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("dial %s: %w", broker, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		c.log.Debugf(ctx, "kafka connected broker=%s client_id=%s", broker, cfg.ClientID)
		return &Consumer{
			conn:           conn,
			dialer:         dialer,
			brokers:        cfg.Brokers,
			groupID:        opts.GroupID,
			sessionTimeout: opts.SessionTimeout,
			opts:           c.opts,
			log:            c.log,
			newReader:      c.newReader,
			jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		}, nil
	}
	return nil, errors.Join(errs...)
}

func (c *Connector) dialer(cfg domain.ConnectionConfig) (*kafka.Dialer, error) {
	d := &kafka.Dialer{
		ClientID:  cfg.ClientID,
		Timeout:   c.opts.DialTimeout,
		DualStack: true,
	}

	if cfg.Auth != nil {
		mech, err := saslMechanism(cfg.Auth)
		if err != nil {
			return nil, err
		}
		d.SASLMechanism = mech
	}

	if cfg.TLS != nil {
		tc, err := tlsConfig(cfg.TLS)
		if err != nil {
			return nil, err
		}
		d.TLS = tc
	}
	return d, nil
}

// saslMechanism — регистр имени механизма не важен.
func saslMechanism(a *domain.AuthConfig) (sasl.Mechanism, error) {
	switch domain.Mechanism(strings.ToLower(strings.TrimSpace(string(a.Mechanism)))) {
	case domain.MechanismPlain:
		return plain.Mechanism{Username: a.Username, Password: a.Password}, nil
	case domain.MechanismScramSHA256:
		return scram.Mechanism(scram.SHA256, a.Username, a.Password)
	case domain.MechanismScramSHA512:
		return scram.Mechanism(scram.SHA512, a.Username, a.Password)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMechanism, a.Mechanism)
	}
}

func tlsConfig(t *domain.TLSConfig) (*tls.Config, error) {
	tc := &tls.Config{
		MinVersion: tls.VersionTLS12,
		// rejectUnauthorized=false отключает проверку сертификата брокера
		InsecureSkipVerify: !t.RejectUnauthorized, //nolint:gosec
	}

	if t.CA != "" {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(t.CA)) {
			return nil, errors.New("tls: no valid certificates in ca")
		}
		tc.RootCAs = pool
	}

	switch {
	case t.Cert != "" && t.Key != "":
		pair, err := tls.X509KeyPair([]byte(t.Cert), []byte(t.Key))
		if err != nil {
			return nil, fmt.Errorf("tls: client key pair: %w", err)
		}
		tc.Certificates = []tls.Certificate{pair}
	case t.Cert != "" || t.Key != "":
		return nil, errors.New("tls: cert and key must be set together")
	}
	return tc, nil
}
