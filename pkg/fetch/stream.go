package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonasrmichel/ratearb/pkg/rate"
)

// StreamClient receives push-style rate ticks from a venue that streams
// quotes instead of exposing a poll endpoint.
type StreamClient struct {
	url string
}

// NewStreamClient returns a StreamClient that will dial url (a ws:// or
// wss:// endpoint) when Stream is called.
func NewStreamClient(url string) *StreamClient {
	return &StreamClient{url: url}
}

type wireTick struct {
	Instrument string  `json:"instrument"`
	Bid        float64 `json:"bid"`
	Ask        float64 `json:"ask"`
}

// Stream dials the venue, subscribes to instruments, and returns a
// channel of rate ticks plus a channel that receives at most one error
// before both channels close. The connection is torn down when ctx is
// canceled.
func (s *StreamClient) Stream(ctx context.Context, instruments []string) (<-chan rate.Rate, <-chan error) {
	ticks := make(chan rate.Rate)
	errs := make(chan error, 1)

	go func() {
		defer close(ticks)
		defer close(errs)

		dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
		conn, _, err := dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			errs <- fmt.Errorf("fetch: dial %s: %w", s.url, err)
			return
		}
		defer conn.Close()

		sub := map[string]interface{}{
			"subscribe": instruments,
		}
		if err := conn.WriteJSON(sub); err != nil {
			errs <- fmt.Errorf("fetch: subscribe: %w", err)
			return
		}

		go func() {
			<-ctx.Done()
			conn.Close()
		}()

		for {
			var tick wireTick
			if err := conn.ReadJSON(&tick); err != nil {
				if ctx.Err() != nil {
					return
				}
				errs <- fmt.Errorf("fetch: read tick: %w", err)
				return
			}

			r := rate.Rate{Instrument: tick.Instrument, Bid: tick.Bid, Ask: tick.Ask}
			select {
			case ticks <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ticks, errs
}
