package wsratesource

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/bazario/settlement-daemon/internal/core/domain"
	"github.com/bazario/settlement-daemon/internal/core/ports"
)

const reconnectDelay = 5 * time.Second

type rateMessage struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	UpdatedAt    string                     `json:"updatedAt"`
}

// Service is a streaming rate source keeping a websocket connection open to
// the provider and caching the latest snapshot it pushed.
type Service struct {
	endpoint string

	lock     *sync.RWMutex
	latest   *domain.ExchangeRateSnapshot
	conn     *websocket.Conn
	quitChan chan struct{}
}

// NewRateSource returns a streaming rate source for the given ws:// or
// wss:// endpoint. Start must be called before the first GetCurrentRates.
func NewRateSource(endpoint string) (*Service, error) {
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid rate feed endpoint: %w", err)
	}

	return &Service{
		endpoint: endpoint,
		lock:     &sync.RWMutex{},
		quitChan: make(chan struct{}, 1),
	}, nil
}

// GetCurrentRates returns the latest snapshot pushed by the provider. It
// never blocks on the connection, a feed that produced nothing yet is an
// upstream failure for the caller to surface.
func (s *Service) GetCurrentRates(
	_ context.Context,
) (*domain.ExchangeRateSnapshot, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.latest == nil {
		return nil, fmt.Errorf("no rate snapshot received from feed yet")
	}
	return s.latest, nil
}

// Start connects to the provider and consumes rate messages until Stop is
// called, reconnecting whenever the connection drops unexpectedly.
func (s *Service) Start() error {
	for {
		mustReconnect, err := s.readFeed()
		if !mustReconnect {
			return err
		}

		log.WithError(err).Warn(
			"rate feed connection dropped unexpectedly. Trying to reconnect...",
		)
		time.Sleep(reconnectDelay)
	}
}

// Stop closes the connection and makes Start return.
func (s *Service) Stop() {
	s.quitChan <- struct{}{}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.conn != nil {
		s.conn.Close()
	}
}

func (s *Service) readFeed() (mustReconnect bool, err error) {
	conn, _, err := websocket.DefaultDialer.Dial(s.endpoint, nil)
	if err != nil {
		return true, err
	}

	s.lock.Lock()
	s.conn = conn
	s.lock.Unlock()

	for {
		select {
		case <-s.quitChan:
			return false, nil
		default:
			var msg rateMessage
			if err := conn.ReadJSON(&msg); err != nil {
				// A closed connection right after Stop is a clean shutdown,
				// not a reason to reconnect.
				select {
				case <-s.quitChan:
					return false, nil
				default:
					return true, err
				}
			}
			s.cacheSnapshot(msg)
		}
	}
}

func (s *Service) cacheSnapshot(msg rateMessage) {
	capturedAt := time.Now()
	if parsed, err := time.Parse(time.RFC3339, msg.UpdatedAt); err == nil {
		capturedAt = parsed
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(msg.Rates))
	for currency, rate := range msg.Rates {
		rates[domain.CurrencyCode(currency)] = rate
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.latest = domain.NewExchangeRateSnapshot(
		domain.CurrencyCode(msg.BaseCurrency), rates, capturedAt,
	)
}

var _ ports.RateSource = (*Service)(nil)
