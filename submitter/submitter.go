package submitter

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/wire"
	"github.com/distledger/ledger-go/transport"
)

const submitMethodPath = "/proto.CryptoService/submitTransaction"

// maxTierOneAttempts caps the streaming-RPC tier at up to three distinct
// nodes, regardless of how many nodes are configured.
const maxTierOneAttempts = 3

// Submitter orchestrates transaction submission across the streaming-RPC
// tier and, on exhaustion, an optional REST fallback tier.
type Submitter struct {
	Pool       *NodePool
	HTTPClient *http.Client
	SubmitURL  string // optional REST fallback endpoint
	Stats      *transport.Stats
	Logger     *zerolog.Logger

	UnaryOptions transport.UnaryOptions

	// TierExhausted, if set, is invoked once per tier ("rpc" or "rest")
	// that runs out of attempts without success, for metrics wiring.
	TierExhausted func(tier string)
}

// Submit encodes the frozen+signed envelope bytes as the transaction body
// and tries the streaming-RPC tier first, falling back to REST if
// configured and the RPC tier exhausts its attempts. txID is the caller's
// own transaction identifier (payer + valid-start), attached to the
// response whenever the node's precheck payload doesn't carry one of its
// own. The envelope's wire layout carries only body_bytes and
// signature_map, not a separate transaction-id field, so the caller
// (which already knows the id it froze the body with) supplies it
// directly instead of this package re-deriving it from opaque bytes.
func (s *Submitter) Submit(ctx context.Context, txID ids.TransactionID, envelopeBytes []byte) (Response, error) {
	attempts := maxTierOneAttempts
	if n := s.Pool.Len(); n < attempts {
		attempts = n
	}

	var lastErr error
	if attempts > 0 {
		resp, err := s.submitRPCTier(ctx, txID, envelopeBytes, attempts)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if s.TierExhausted != nil {
			s.TierExhausted("rpc")
		}
	}

	if s.SubmitURL != "" {
		resp, err := s.submitRESTTier(ctx, txID, envelopeBytes)
		if err == nil {
			return resp, nil
		}
		if s.TierExhausted != nil {
			s.TierExhausted("rest")
		}
		if lastErr == nil {
			lastErr = err
		}
		return Response{}, lastErr
	}

	if lastErr == nil {
		lastErr = ErrNoNodesConfigured
	}
	return Response{}, lastErr
}

func (s *Submitter) submitRPCTier(ctx context.Context, txID ids.TransactionID, envelopeBytes []byte, attempts int) (Response, error) {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		node, err := s.Pool.PickEligible()
		if err != nil {
			return Response{}, err
		}

		respBytes, err := transport.Unary(ctx, s.HTTPClient, node.Address, submitMethodPath, envelopeBytes, s.Stats, s.UnaryOptions)
		if err != nil {
			s.Pool.RecordFailure(node)
			lastErr = err
			if attempt < attempts-1 {
				delay := backoffStep(attempt)
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return Response{}, ctx.Err()
				case <-timer.C:
				}
			}
			continue
		}

		s.Pool.RecordSuccess(node)
		resp, decodeErr := decodeTransactionResponse(respBytes)
		if decodeErr != nil {
			return Response{}, decodeErr
		}
		if resp.NodeID == nil {
			resp.NodeID = &node.AccountID
		}
		if resp.TransactionID == nil {
			resp.TransactionID = &txID
		}
		return resp, nil
	}
	return Response{}, lastErr
}

func backoffStep(attempt int) time.Duration {
	const base = 100 * time.Millisecond
	const max = 2 * time.Second
	shift := attempt
	if shift > 6 {
		shift = 6
	}
	d := base << shift
	if d > max {
		d = max
	}
	return d
}

type restSubmitRequest struct {
	Transaction string `json:"transaction"`
	NodeID      string `json:"nodeId"`
}

type restSubmitResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Hash          string `json:"hash"`
	NodeID        string `json:"nodeId"`
}

type restSubmitErrorBody struct {
	Status       string `json:"status"`
	Error        string `json:"error"`
	Message      string `json:"message"`
	ErrorMessage string `json:"errorMessage"`
	Detail       string `json:"detail"`
}

func (s *Submitter) submitRESTTier(ctx context.Context, txID ids.TransactionID, envelopeBytes []byte) (Response, error) {
	node, err := s.Pool.PickEligible()
	var nodeLabel string
	if err == nil {
		nodeLabel = node.AccountID.String()
	}

	reqBody, marshalErr := json.Marshal(restSubmitRequest{
		Transaction: base64.StdEncoding.EncodeToString(envelopeBytes),
		NodeID:      nodeLabel,
	})
	if marshalErr != nil {
		return Response{}, marshalErr
	}

	body, status, httpErr := transport.RestPost(ctx, s.HTTPClient, s.SubmitURL, reqBody)
	if httpErr != nil {
		return Response{}, httpErr
	}

	if status == http.StatusOK || status == http.StatusCreated || status == http.StatusAccepted {
		var parsed restSubmitResponse
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
			return Response{}, jsonErr
		}
		var respTxID *ids.TransactionID
		if parsed.TransactionID != "" {
			if parsed2, perr := ids.ParseTransactionID(parsed.TransactionID); perr == nil {
				respTxID = &parsed2
			}
		}
		var nodeID *ids.EntityID
		if parsed.NodeID != "" {
			if eid, perr := ids.ParseEntityID(parsed.NodeID); perr == nil {
				nodeID = &eid
			}
		}
		if respTxID == nil {
			respTxID = &txID
		}
		label := parsed.Status
		if label == "" {
			label = "OK"
		}
		return normalizeResponse(label, 0, respTxID, nodeID, decodeHashField(parsed.Hash), ""), nil
	}

	var errBody restSubmitErrorBody
	_ = json.Unmarshal(body, &errBody)
	msg := firstNonEmpty(errBody.Message, errBody.ErrorMessage, errBody.Detail, errBody.Error)
	label := errBody.Status
	if label == "" {
		label = "ERROR"
	}
	if msg == "" {
		return Response{}, &transport.HttpError{StatusCode: status, Body: string(body)}
	}
	return normalizeResponse(label, status, nil, nil, nil, msg), nil
}

func decodeHashField(s string) []byte {
	if s == "" {
		return nil
	}
	if b, err := hex.DecodeString(trimHexPrefix(s)); err == nil {
		return b
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b
	}
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// decodeTransactionResponse parses the RPC tier's wire response:
// TransactionResponse { precheck_code: varint, cost: optional varint }.
func decodeTransactionResponse(buf []byte) (Response, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return Response{}, err
	}
	code := 0
	for _, f := range fields {
		if f.Number == 1 {
			code = int(f.Int64())
		}
	}
	label := precheckLabel(code)
	return normalizeResponse(label, code, nil, nil, nil, ""), nil
}
