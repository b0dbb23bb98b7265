package mirror

import (
	"context"
	"fmt"

	"github.com/distledger/ledger-go/ids"
)

// Nft is the decoded `/tokens/{id}/nfts/{serial}` response.
type Nft struct {
	TokenID           string    `json:"token_id"`
	SerialNumber      flexInt64 `json:"serial_number"`
	AccountID         string    `json:"account_id"`
	Metadata          string    `json:"metadata"`
	CreatedTimestamp  string    `json:"created_timestamp"`
}

// GetTokenNft reads one NFT by token id and serial number. This read has
// no RPC-parity equivalent wired (the spec names only account/token info
// shapes explicitly; NFT-by-serial has no consensus-node query this
// client decodes), so it is REST-only.
func (c *Client) GetTokenNft(ctx context.Context, tokenID ids.EntityID, serial int64) (Nft, error) {
	path := fmt.Sprintf("/tokens/%s/nfts/%d", tokenID.String(), serial)
	url := buildURL(c.BaseURL, path, nil)
	var out Nft
	if err := getJSON(ctx, c, "nft", url, &out); err != nil {
		return Nft{}, err
	}
	return out, nil
}
