// Package transport implements the grpc-web-framed unary and server-stream
// calls the Submitter and Mirror Client issue, plus a plain JSON REST
// fetcher. The retry/backoff/deadline loop retries the same endpoint
// rather than failing over to another: a single node's transport here
// is expected to recover quickly rather than being permanently down,
// and node-level failover is the Submitter's job, not the transport's.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/distledger/ledger-go/wire"
)

const (
	defaultMaxRetries   = 2
	defaultBaseBackoff  = 100 * time.Millisecond
	defaultMaxBackoff   = 2 * time.Second
	maxResponseBodyBytes = 4 << 20
)

// UnaryOptions configures a single Unary call.
type UnaryOptions struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	Deadline    time.Time // zero value means no deadline
	Logger      *zerolog.Logger

	// DebugPayloads, when true, attaches a fresh v4 "x-request-id" header
	// to every attempt and logs the request/response byte lengths at
	// debug level — never the payload bytes themselves, since a body can
	// carry key material the caller never intended to have logged.
	DebugPayloads bool

	// Metrics, if set, receives the same attempt/retry/failure/latency
	// events Stats does, as Prometheus observations.
	Metrics MetricsRecorder
}

// MetricsRecorder is the subset of metrics.Metrics a Unary call needs.
// Defined here, at the point of use, so transport has no import
// dependency on the metrics package; metrics.Metrics satisfies this
// interface directly.
type MetricsRecorder interface {
	ObserveUnaryAttempt(method string)
	ObserveUnaryRetry(method string)
	ObserveUnaryFailure(method string)
	ObserveUnaryLatency(method string, seconds float64)
}

func (o UnaryOptions) withDefaults() UnaryOptions {
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = defaultBaseBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = defaultMaxBackoff
	}
	return o
}

// Unary performs one grpc-web unary call: endpoint+methodPath receives a
// single data frame carrying requestBytes, and the merged data frames of
// the response are returned. stats, if non-nil, is updated with attempt
// counters, retries, failures, and the last observed latency/status.
func Unary(ctx context.Context, httpClient *http.Client, endpoint, methodPath string, requestBytes []byte, stats *Stats, opts UnaryOptions) ([]byte, error) {
	opts = opts.withDefaults()
	url := endpoint + methodPath
	frame := wire.EncodeDataFrame(requestBytes)

	var lastErr error

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if !opts.Deadline.IsZero() && !time.Now().Before(opts.Deadline) {
			return nil, &ErrDeadlineExceeded{}
		}

		if attempt > 0 {
			if stats != nil {
				stats.recordRetry()
			}
			if opts.Metrics != nil {
				opts.Metrics.ObserveUnaryRetry(methodPath)
			}
			delay := backoffDelay(attempt-1, opts.BaseBackoff, opts.MaxBackoff)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		if stats != nil {
			stats.recordAttempt()
		}
		if opts.Metrics != nil {
			opts.Metrics.ObserveUnaryAttempt(methodPath)
		}

		var requestID string
		if opts.DebugPayloads {
			requestID = uuid.NewString()
		}

		attemptStart := time.Now()
		respBytes, httpStatus, grpcStatus, err := doUnaryAttempt(ctx, httpClient, url, frame, requestID)
		latency := time.Since(attemptStart)

		if stats != nil {
			stats.recordLatency(latency.Nanoseconds())
			if httpStatus != 0 {
				stats.recordHTTPStatus(httpStatus)
			}
			if grpcStatus != nil {
				stats.recordStatusCode(grpcStatus.Code)
			}
		}
		if opts.Metrics != nil {
			opts.Metrics.ObserveUnaryLatency(methodPath, latency.Seconds())
		}

		if opts.Logger != nil {
			event := opts.Logger.Debug().
				Str("method", methodPath).
				Int("attempt", attempt).
				Dur("latency", latency).
				Int("request_bytes", len(frame)).
				Int("response_bytes", len(respBytes)).
				Err(err)
			if requestID != "" {
				event = event.Str("request_id", requestID)
			}
			event.Msg("unary attempt")
		}

		if err == nil && grpcStatus == nil {
			return respBytes, nil
		}

		if grpcStatus != nil {
			lastErr = grpcStatus
		} else {
			lastErr = err
		}
	}

	if stats != nil {
		stats.recordFailure()
	}
	if opts.Metrics != nil {
		opts.Metrics.ObserveUnaryFailure(methodPath)
	}
	return nil, lastErr
}

func doUnaryAttempt(ctx context.Context, httpClient *http.Client, url string, frame []byte, requestID string) ([]byte, int, *GrpcStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(frame))
	if err != nil {
		return nil, 0, nil, err
	}
	req.Header.Set("content-type", "application/grpc-web+proto")
	req.Header.Set("x-grpc-web", "1")
	req.Header.Set("te", "trailers")
	if requestID != "" {
		req.Header.Set("x-request-id", requestID)
	}
	req.Header.Set("grpc-accept-encoding", "identity")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, nil, err
	}

	trailer := headerTrailer(resp.Header)

	parser := &wire.FrameParser{}
	frames, ferr := parser.Feed(body)
	if ferr != nil {
		return nil, resp.StatusCode, nil, ferr
	}

	var payload bytes.Buffer
	for _, f := range frames {
		if f.IsTrailer {
			trailer = f.Trailer
			continue
		}
		payload.Write(f.Data)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if !trailer.Set() {
			return nil, resp.StatusCode, nil, &HttpError{StatusCode: resp.StatusCode, Body: payload.String()}
		}
	}

	if trailer.Set() && trailer.GrpcStatus != 0 {
		return nil, resp.StatusCode, &GrpcStatus{Code: trailer.GrpcStatus, Message: trailer.GrpcMessage}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, nil, &HttpError{StatusCode: resp.StatusCode, Body: payload.String()}
	}

	return payload.Bytes(), resp.StatusCode, nil, nil
}

// headerTrailer builds a Trailer from trailers-in-headers, per grpc-web's
// allowance for servers that cannot emit a true trailer frame.
func headerTrailer(h http.Header) wire.Trailer {
	status := h.Get("grpc-status")
	if status == "" {
		return wire.Trailer{}
	}
	return wire.ParseTrailerPayload([]byte("grpc-status: " + status + "\r\ngrpc-message: " + h.Get("grpc-message") + "\r\n"))
}
