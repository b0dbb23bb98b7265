package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/distledger/ledger-go/wire"
)

// StreamHandler is invoked once per data frame with the decoded payload
// bytes. Returning an error stops the stream early.
type StreamHandler func(payload []byte) error

// StreamResult reports how a server-stream call ended.
type StreamResult struct {
	Trailer wire.Trailer
}

// Stream opens a grpc-web server-streaming call and invokes handler once
// per data frame until a trailer frame (or trailers-in-headers) ends it, a
// transport error occurs, or the context is cancelled. The caller of a
// higher-level subscription is responsible for reconnecting with an
// advanced cursor; Stream itself performs no retries.
func Stream(ctx context.Context, httpClient *http.Client, endpoint, methodPath string, requestBytes []byte, handler StreamHandler) (StreamResult, error) {
	url := endpoint + methodPath
	frame := wire.EncodeDataFrame(requestBytes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(frame))
	if err != nil {
		return StreamResult{}, err
	}
	req.Header.Set("content-type", "application/grpc-web+proto")
	req.Header.Set("x-grpc-web", "1")
	req.Header.Set("te", "trailers")
	req.Header.Set("grpc-accept-encoding", "identity")

	resp, err := httpClient.Do(req)
	if err != nil {
		return StreamResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
		return StreamResult{}, &HttpError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	parser := &wire.FrameParser{}
	buf := make([]byte, 32*1024)
	result := StreamResult{Trailer: headerTrailer(resp.Header)}

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			frames, ferr := parser.Feed(buf[:n])
			if ferr != nil {
				return result, ferr
			}
			for _, f := range frames {
				if f.IsTrailer {
					result.Trailer = f.Trailer
					continue
				}
				if herr := handler(f.Data); herr != nil {
					return result, herr
				}
			}
		}
		if readErr == io.EOF {
			return result, nil
		}
		if readErr != nil {
			return result, readErr
		}
	}
}
