package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/distledger/ledger-go/transport"
)

// getJSON issues a REST GET against url, decoding a 2xx JSON body into
// out. Non-2xx responses are surfaced as HTTPStatusError; decode failures
// as DecodeError naming the read they came from.
func getJSON(ctx context.Context, c *Client, read, url string, out any) error {
	body, status, err := transport.RestGet(ctx, c.HTTPClient, url)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &HTTPStatusError{StatusCode: status, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Read: read, Err: err}
	}
	return nil
}

// pageLinks is the "links" envelope every paginated Mirror list response
// carries, naming the server-driven continuation to the next page.
type pageLinks struct {
	Next *string `json:"next"`
}

// nextURL resolves this page's "links.next" against base, or returns ""
// when there is no further page.
func (l pageLinks) nextURL(base string) string {
	if l.Next == nil || *l.Next == "" {
		return ""
	}
	return resolveNext(base, *l.Next)
}

func queryFromOptions(opts map[string]string, order []string) []queryParam {
	params := make([]queryParam, 0, len(order))
	for _, k := range order {
		if v, ok := opts[k]; ok && v != "" {
			params = append(params, queryParam{Key: k, Value: v})
		}
	}
	return params
}

func fmtLimit(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", limit)
}
