// Package nats adapts a NATS subscription to the ports.MessageSource port.
package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/solstream/walletsink/internal/ports"
)

// subscriptionBuffer is the pending-message capacity between the NATS
// dispatcher and the ingest loop. Messages arriving while a flush is in
// progress queue here; the producer is fire-and-forget and is never blocked.
const subscriptionBuffer = 1024

// Source implements ports.MessageSource over a NATS subscription.
// The connection and subscription handle are owned by the Source for its
// entire lifetime.
type Source struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	msgs   chan []byte
	closed chan struct{}
	logger ports.Logger
}

// Connect dials the NATS server and subscribes to the given subject.
// Connection failure is fatal: the caller is expected to exit before the
// ingest loop ever starts.
func Connect(url, subject string, logger ports.Logger) (*Source, error) {
	s := &Source{
		msgs:   make(chan []byte, subscriptionBuffer),
		closed: make(chan struct{}),
		logger: logger,
	}

	conn, err := nats.Connect(url,
		nats.Name("walletsink"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("disconnected from message bus", ports.Err(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to message bus",
				ports.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			// Permanent closure: reconnect attempts are exhausted.
			close(s.closed)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	s.conn = conn

	inner := make(chan *nats.Msg, subscriptionBuffer)
	sub, err := conn.ChanSubscribe(subject, inner)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.sub = sub

	go s.forward(inner)

	return s, nil
}

// forward moves payloads from the subscription into the source channel and
// closes it when the connection is permanently gone.
func (s *Source) forward(inner <-chan *nats.Msg) {
	for {
		select {
		case m := <-inner:
			select {
			case s.msgs <- m.Data:
			case <-s.closed:
				close(s.msgs)
				return
			}
		case <-s.closed:
			close(s.msgs)
			return
		}
	}
}

// Messages returns the inbound payload channel. The channel is closed when
// the subscription is permanently closed.
func (s *Source) Messages() <-chan []byte {
	return s.msgs
}

// Close unsubscribes and closes the connection. The closed handler fires as
// part of connection teardown, which in turn closes the message channel.
func (s *Source) Close() error {
	if err := s.sub.Unsubscribe(); err != nil && !s.conn.IsClosed() {
		s.conn.Close()
		return fmt.Errorf("unsubscribe: %w", err)
	}
	s.conn.Close()
	return nil
}
