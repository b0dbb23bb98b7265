package mirror

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/transport"
	"github.com/distledger/ledger-go/wire"
)

const subscribeTopicMethodPath = "/com.hedera.mirror.api.proto.ConsensusService/subscribeTopic"

const (
	initialReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay     = 5 * time.Second
	cleanEndIdleDelay     = 2 * time.Second
	restFallbackIdleDelay = 5 * time.Second
)

// TopicMessage is one decoded consensus topic message.
type TopicMessage struct {
	ConsensusTimestamp ids.Timestamp
	Message            []byte
	RunningHash         []byte
	SequenceNumber     uint64
}

// TopicMessageHandler receives each message a subscription delivers, in
// consensus-timestamp order. A non-nil return stops the subscription.
type TopicMessageHandler func(TopicMessage) error

// SubscriptionOptions configures SubscribeTopic.
type SubscriptionOptions struct {
	// StartTime is the caller's requested consensus_start. Zero value
	// means "from now", passed through to the server unchanged.
	StartTime ids.Timestamp
}

// SubscribeTopic runs the Topic Subscription state machine until ctx is
// canceled or the handler returns an error: Start, Connect, Receive,
// Terminate (exponential reconnect capped at 5s), Clean end (2s idle
// guard when a session delivered nothing).
func (c *Client) SubscribeTopic(ctx context.Context, topicID ids.EntityID, opts SubscriptionOptions, handler TopicMessageHandler) error {
	nextStart := opts.StartTime
	reconnectDelay := initialReconnectDelay

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delivered, trailer, err := c.connectAndReceive(ctx, topicID, nextStart, handler, &nextStart)
		if err != nil {
			return err
		}

		if trailer.code() != 0 {
			if c.Metrics != nil {
				c.Metrics.ObserveStreamReconnect(subscribeTopicMethodPath)
			}
			if err := sleepCtx(ctx, reconnectDelay); err != nil {
				return err
			}
			reconnectDelay *= 2
			if reconnectDelay > maxReconnectDelay {
				reconnectDelay = maxReconnectDelay
			}
			continue
		}

		reconnectDelay = initialReconnectDelay
		if !delivered {
			if err := sleepCtx(ctx, cleanEndIdleDelay); err != nil {
				return err
			}
		}
	}
}

type subscribeTrailer struct {
	grpcStatus int
}

func (t subscribeTrailer) code() int { return t.grpcStatus }

func (c *Client) connectAndReceive(ctx context.Context, topicID ids.EntityID, start ids.Timestamp, handler TopicMessageHandler, nextStart *ids.Timestamp) (delivered bool, trailer subscribeTrailer, err error) {
	reqBytes := encodeConsensusTopicQuery(topicID, start)

	// fatalErr distinguishes a decode failure or a handler-requested stop
	// (never retried) from a transport-level read error (retried via the
	// Terminate state below); Stream reports both kinds through its one
	// error result, so the closure records which kind it was.
	var fatalErr error
	result, streamErr := transport.Stream(ctx, c.HTTPClient, c.RPCEndpoint, subscribeTopicMethodPath, reqBytes, func(payload []byte) error {
		msg, decErr := decodeTopicMessage(payload)
		if decErr != nil {
			fatalErr = decErr
			return decErr
		}
		delivered = true
		if c.Metrics != nil {
			c.Metrics.ObserveStreamFrame(subscribeTopicMethodPath)
		}
		*nextStart = msg.ConsensusTimestamp.Advance()
		if hErr := handler(msg); hErr != nil {
			fatalErr = hErr
			return hErr
		}
		return nil
	})
	if fatalErr != nil {
		return delivered, subscribeTrailer{}, fatalErr
	}
	if streamErr != nil {
		return delivered, subscribeTrailer{grpcStatus: 1}, nil
	}
	return delivered, subscribeTrailer{grpcStatus: result.Trailer.GrpcStatus}, nil
}

// encodeConsensusTopicQuery builds a ConsensusTopicQuery { topic_id,
// consensus_start, consensus_end = null, limit = null }.
func encodeConsensusTopicQuery(topicID ids.EntityID, start ids.Timestamp) []byte {
	w := wire.NewWriter()
	topicID.WriteTo(w, 1)
	start.WriteTo(w, 2)
	return w.Bytes()
}

func decodeTopicMessage(buf []byte) (TopicMessage, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return TopicMessage{}, err
	}
	var out TopicMessage
	var haveTimestamp bool
	for _, f := range fields {
		switch f.Number {
		case 1:
			ts, err := ids.DecodeTimestamp(f.Bytes)
			if err != nil {
				return TopicMessage{}, err
			}
			out.ConsensusTimestamp = ts
			haveTimestamp = true
		case 2:
			out.Message = f.Bytes
		case 3:
			out.RunningHash = f.Bytes
		case 4:
			out.SequenceNumber = f.Varint
		}
	}
	if !haveTimestamp {
		return TopicMessage{}, fmt.Errorf("mirror: topic message missing consensus_timestamp")
	}
	return out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RESTTopicMessagePage is one page of `/topics/{id}/messages`.
type RESTTopicMessagePage struct {
	Messages []RESTTopicMessage `json:"messages"`
	Links    pageLinks          `json:"links"`
}

type RESTTopicMessage struct {
	ConsensusTimestamp string     `json:"consensus_timestamp"`
	Message            string     `json:"message"`
	RunningHash        string     `json:"running_hash"`
	SequenceNumber     flexUint64 `json:"sequence_number"`
}

// GetTopicMessagesREST reads one page of `/topics/{id}/messages`, the
// REST fallback mode for topic subscription polling. limit bounds the
// batch size; cursor, when non-empty, is a prior page's opaque "next"
// continuation.
func (c *Client) GetTopicMessagesREST(ctx context.Context, topicID ids.EntityID, limit int, cursor string) (RESTTopicMessagePage, error) {
	var url string
	if cursor != "" {
		url = resolveNext(c.BaseURL, cursor)
	} else {
		path := "/topics/" + topicID.String() + "/messages"
		var q []queryParam
		if v := fmtLimit(limit); v != "" {
			q = append(q, queryParam{Key: "limit", Value: v})
		}
		url = buildURL(c.BaseURL, path, q)
	}
	var out RESTTopicMessagePage
	if err := getJSON(ctx, c, "topic-messages", url, &out); err != nil {
		return RESTTopicMessagePage{}, err
	}
	return out, nil
}

// PollTopicMessagesREST repeatedly pages through `/topics/{id}/messages`
// starting from cursor (empty for "from the beginning"), delivering each
// message to handler and sleeping restFallbackIdleDelay with full jitter
// whenever a page's cursor comes back empty, per the spec's Design Notes
// flagging the original's flat unjittered 5s sleep as unintentional.
func (c *Client) PollTopicMessagesREST(ctx context.Context, topicID ids.EntityID, limit int, startCursor string, handler TopicMessageHandler) error {
	cursor := startCursor
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		page, err := c.GetTopicMessagesREST(ctx, topicID, limit, cursor)
		if err != nil {
			return err
		}

		for _, m := range page.Messages {
			msg, err := restMessageToTopicMessage(m)
			if err != nil {
				return err
			}
			if err := handler(msg); err != nil {
				return err
			}
		}

		next := page.Links.nextURL(c.BaseURL)
		if next == "" {
			if err := sleepCtx(ctx, jitteredDelay(restFallbackIdleDelay)); err != nil {
				return err
			}
			continue
		}
		cursor = next
	}
}

func restMessageToTopicMessage(m RESTTopicMessage) (TopicMessage, error) {
	ts, err := ids.ParseTimestamp(m.ConsensusTimestamp)
	if err != nil {
		return TopicMessage{}, err
	}
	payload, err := decodeFlexBytes(m.Message, false)
	if err != nil {
		return TopicMessage{}, err
	}
	runningHash, err := decodeFlexBytes(m.RunningHash, false)
	if err != nil {
		return TopicMessage{}, err
	}
	return TopicMessage{
		ConsensusTimestamp: ts,
		Message:            payload,
		RunningHash:        runningHash,
		SequenceNumber:     uint64(m.SequenceNumber),
	}, nil
}

// jitteredDelay returns a uniformly random duration in [0, max), the
// full-jitter backoff used on the REST reconnect path (unlike the
// streaming tier's fixed doubling ladder, which keeps deterministic
// literal values so its timing stays easy to assert in tests).
func jitteredDelay(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}
