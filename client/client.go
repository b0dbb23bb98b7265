// Package client wires the Wire Codec, Consensus Submitter, Receipt
// Poller, and Mirror Read Client into a single facade that unifies
// submit, poll, and mirror-read behind one type per configured ledger
// network. There is deliberately no package-level singleton and no
// CLI: this package is an importable library entry point only.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/distledger/ledger-go/config"
	"github.com/distledger/ledger-go/envelope"
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/mirror"
	"github.com/distledger/ledger-go/query"
	"github.com/distledger/ledger-go/receipt"
	"github.com/distledger/ledger-go/submitter"
	"github.com/distledger/ledger-go/transport"
)

const receiptQueryMethodPath = "/proto.CryptoService/getTransactionReceipts"

// defaultNodeCooldown mirrors submitter's own unexported default,
// repeated here since New is this package's only node-pool constructor
// and submitter.NewNodePool requires an explicit, non-zero cooldown to
// enable quarantine at all.
const defaultNodeCooldown = 5 * time.Second

// metricsRecorder is satisfied by *metrics.Metrics; declared here, at
// the point of use, rather than importing metrics directly into the
// Submitter/transport/mirror wiring below, so this package is the only
// one that needs to know the concrete metrics type.
type metricsRecorder interface {
	transport.MetricsRecorder
	mirror.MetricsRecorder
	ObserveTierExhausted(tier string)
}

// Client is the top-level handle a caller obtains once per process (or
// once per operator identity) and reuses across calls: it owns the node
// pool's health state, the shared *http.Client, and the Mirror client's
// RPC-fallback memory.
type Client struct {
	submitter *submitter.Submitter
	mirror    *mirror.Client
	httpClient *http.Client
}

// Option configures New.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	logger          *zerolog.Logger
	metrics         metricsRecorder
	maxRetries      int
	baseBackoff     time.Duration
	maxBackoff      time.Duration
	debugPayloads   bool
}

// WithHTTPClient overrides the shared *http.Client used for every
// transport (unary, stream, and Mirror REST). Defaults to a Client with
// no timeout set at this layer — per-call deadlines are expected to
// come from the caller's context.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.httpClient = h }
}

// WithLogger attaches a logger (see the logging package) that the
// Submitter, transport, and Mirror client all log debug/warn events
// through.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics attaches a *metrics.Metrics instance; every transport
// attempt, stream frame/reconnect, and tier exhaustion is recorded as a
// Prometheus observation through it.
func WithMetrics(m metricsRecorder) Option {
	return func(o *options) { o.metrics = m }
}

// WithRetryPolicy overrides the unary transport's retry/backoff
// parameters, applied uniformly across the Submitter's RPC tier.
func WithRetryPolicy(maxRetries int, baseBackoff, maxBackoff time.Duration) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.baseBackoff = baseBackoff
		o.maxBackoff = maxBackoff
	}
}

// WithDebugPayloads enables per-attempt "x-request-id" correlation and
// byte-length debug logging on every unary call. Passed to New, it turns
// the feature on even when config.Config.GRPCDebugPayloads is false.
func WithDebugPayloads() Option {
	return func(o *options) { o.debugPayloads = true }
}

// New builds a Client from a resolved config.Config (see config.Resolve
// for the env/file/defaults merge that usually produces one).
func New(cfg config.Config, opts ...Option) *Client {
	o := options{debugPayloads: cfg.GRPCDebugPayloads}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}

	unaryOpts := transport.UnaryOptions{
		MaxRetries:    o.maxRetries,
		BaseBackoff:   o.baseBackoff,
		MaxBackoff:    o.maxBackoff,
		Logger:        o.logger,
		DebugPayloads: o.debugPayloads,
	}
	if o.metrics != nil {
		unaryOpts.Metrics = o.metrics
	}

	pool := submitter.NewNodePool(cfg.Nodes, 0, defaultNodeCooldown)
	sub := &submitter.Submitter{
		Pool:         pool,
		HTTPClient:   o.httpClient,
		Stats:        &transport.Stats{},
		Logger:       o.logger,
		UnaryOptions: unaryOpts,
	}
	if o.metrics != nil {
		m := o.metrics
		sub.TierExhausted = m.ObserveTierExhausted
	}

	mc := mirror.NewClient(cfg.MirrorURL, cfg.MirrorRPCEndpoint, o.httpClient)
	mc.Stats = sub.Stats
	mc.Logger = o.logger
	if o.metrics != nil {
		mc.Metrics = o.metrics
	}

	return &Client{submitter: sub, mirror: mc, httpClient: o.httpClient}
}

// Execute submits a frozen, signed envelope (see the envelope package)
// as a transaction, trying the streaming-RPC tier first and an optional
// REST fallback tier second.
func (c *Client) Execute(ctx context.Context, txID ids.TransactionID, env *envelope.Envelope) (submitter.Response, error) {
	body, err := env.Bytes()
	if err != nil {
		return submitter.Response{}, err
	}
	return c.submitter.Submit(ctx, txID, body)
}

// GetReceipt polls for a transaction's receipt via the streaming-RPC
// node pool until it reaches a terminal status or opts' timeout/poll
// interval elapse, per receipt.Poll's state machine.
func (c *Client) GetReceipt(ctx context.Context, txID ids.TransactionID, opts receipt.PollOptions) (receipt.Receipt, error) {
	return receipt.Poll(ctx, txID, c.queryReceipt, opts)
}

func (c *Client) queryReceipt(ctx context.Context, txID ids.TransactionID) (receipt.Receipt, error) {
	node, err := c.submitter.Pool.PickEligible()
	if err != nil {
		return receipt.Receipt{}, err
	}
	reqBytes := query.EncodeReceiptQuery(txID, false, false)
	respBytes, err := transport.Unary(ctx, c.httpClient, node.Address, receiptQueryMethodPath, reqBytes, c.submitter.Stats, c.submitter.UnaryOptions)
	if err != nil {
		c.submitter.Pool.RecordFailure(node)
		return receipt.Receipt{}, err
	}
	c.submitter.Pool.RecordSuccess(node)
	return query.DecodeReceiptResponse(respBytes, txID)
}

// Mirror returns the Mirror Read Client for historical/indexed reads
// and topic subscriptions.
func (c *Client) Mirror() *mirror.Client {
	return c.mirror
}

// GrpcStatsSnapshot returns a point-in-time read of the shared
// request/retry/failure/latency counters the Submitter and Mirror
// client both update.
func (c *Client) GrpcStatsSnapshot() transport.Snapshot {
	return c.submitter.Stats.Snapshot()
}

// Close releases the shared HTTP transport's idle connections. It does
// not stop any in-flight SubscribeTopic call; cancel the context passed
// to that call instead.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
