// Package mirror implements the Mirror Read Client: a REST-first, RPC-
// opportunistic reader for historical and indexed Ledger state, plus the
// Topic Subscription long-lived stream consumer. REST is the baseline
// transport; RPC parity is attempted first per read feature until it
// fails once, after which that feature falls back to REST for the
// remainder of the Client's lifetime.
package mirror

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/distledger/ledger-go/transport"
	"github.com/rs/zerolog"
)

const defaultRESTTimeout = 10 * time.Second

// Client reads Mirror state over REST, with an opportunistic RPC parity
// path for reads that have one wired.
type Client struct {
	BaseURL     string
	RPCEndpoint string
	HTTPClient  *http.Client
	Stats       *transport.Stats
	Logger      *zerolog.Logger

	// Metrics, if set, receives stream frame/reconnect observations from
	// SubscribeTopic as Prometheus observations.
	Metrics MetricsRecorder

	mu          sync.Mutex
	rpcFellBack map[string]bool
}

// MetricsRecorder is the subset of metrics.Metrics a Mirror Client needs.
// Defined here, at the point of use, so mirror has no import dependency
// on the metrics package; metrics.Metrics satisfies this interface
// directly.
type MetricsRecorder interface {
	ObserveStreamFrame(method string)
	ObserveStreamReconnect(method string)
}

// NewClient constructs a Mirror client against baseURL (e.g.
// "https://mainnet-public.mirrornode.hedera.com/api/v1"). rpcEndpoint may
// be empty, in which case every read is REST-only.
func NewClient(baseURL, rpcEndpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRESTTimeout}
	}
	return &Client{
		BaseURL:     baseURL,
		RPCEndpoint: rpcEndpoint,
		HTTPClient:  httpClient,
		Stats:       &transport.Stats{},
		rpcFellBack: make(map[string]bool),
	}
}

// hasFallenBack reports whether feature has already failed over to REST
// for this client's lifetime.
func (c *Client) hasFallenBack(feature string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rpcFellBack[feature]
}

// markFallenBack records feature's one-shot RPC failure, logging a
// warning exactly once per feature.
func (c *Client) markFallenBack(feature string, cause error) {
	c.mu.Lock()
	already := c.rpcFellBack[feature]
	c.rpcFellBack[feature] = true
	c.mu.Unlock()

	if !already && c.Logger != nil {
		c.Logger.Warn().Err(cause).Str("feature", feature).
			Msg("mirror: RPC parity read failed, falling back to REST for remainder of client lifetime")
	}
}

// readWithParity tries rpcCall when RPCEndpoint is configured and
// feature hasn't already fallen back; on any rpcCall error it marks the
// feature as fallen back and tries restCall instead. If RPC succeeds it
// is returned directly; REST is otherwise the only path taken.
func readWithParity[T any](ctx context.Context, c *Client, feature string, rpcCall func(ctx context.Context) (T, error), restCall func(ctx context.Context) (T, error)) (T, error) {
	if c.RPCEndpoint != "" && !c.hasFallenBack(feature) && rpcCall != nil {
		v, err := rpcCall(ctx)
		if err == nil {
			return v, nil
		}
		c.markFallenBack(feature, err)
	}
	return restCall(ctx)
}
