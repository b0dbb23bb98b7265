package mirror

import (
	"context"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/query"
	"github.com/distledger/ledger-go/transport"
)

// AccountBalance is the Mirror REST balance sub-document nested under an
// account response.
type AccountBalance struct {
	Balance   flexUint64           `json:"balance"`
	Timestamp string               `json:"timestamp"`
	Tokens    []accountTokenAmount `json:"tokens"`
}

type accountTokenAmount struct {
	TokenID string     `json:"token_id"`
	Balance flexUint64 `json:"balance"`
}

// Account is the decoded `/accounts/{id}` response.
type Account struct {
	AccountID string         `json:"account"`
	Balance   AccountBalance `json:"balance"`
	Key       *struct {
		Type string `json:"_type"`
		Key  string `json:"key"`
	} `json:"key"`
	Memo                          string     `json:"memo"`
	Deleted                       bool       `json:"deleted"`
	AutoRenewPeriod                flexUint64 `json:"auto_renew_period"`
	MaxAutomaticTokenAssociations  flexInt64  `json:"max_automatic_token_associations"`
	ContractID                    *string    `json:"contract_account_id"`
}

const featureAccount = "account"

// GetAccount reads account id's current state. If an RPC endpoint is
// configured and the "account" feature hasn't fallen back yet, it tries
// the RPC parity path (the same CryptoGetInfo wire shape consensus nodes
// serve, since Mirror nodes proxy the identical query) before REST.
func (c *Client) GetAccount(ctx context.Context, id ids.EntityID) (Account, error) {
	return readWithParity(ctx, c, featureAccount,
		func(ctx context.Context) (Account, error) {
			return c.getAccountRPC(ctx, id)
		},
		func(ctx context.Context) (Account, error) {
			return c.getAccountREST(ctx, id)
		},
	)
}

func (c *Client) getAccountREST(ctx context.Context, id ids.EntityID) (Account, error) {
	url := buildURL(c.BaseURL, "/accounts/"+id.String(), nil)
	var out Account
	if err := getJSON(ctx, c, "account", url, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

func (c *Client) getAccountRPC(ctx context.Context, id ids.EntityID) (Account, error) {
	if c.RPCEndpoint == "" {
		return Account{}, errRPCUnconfigured
	}
	reqBytes := query.EncodeAccountInfoQuery(id)
	respBytes, err := transport.Unary(ctx, c.HTTPClient, c.RPCEndpoint, accountInfoMethodPath, reqBytes, c.Stats, transport.UnaryOptions{})
	if err != nil {
		return Account{}, err
	}
	info, err := query.DecodeAccountInfoResponse(respBytes)
	if err != nil {
		return Account{}, err
	}
	return accountFromInfo(info), nil
}

func accountFromInfo(info query.AccountInfo) Account {
	out := Account{
		AccountID:                     info.AccountID.String(),
		Memo:                          info.Memo,
		Deleted:                       info.Deleted,
		AutoRenewPeriod:               flexUint64(info.AutoRenewPeriodSeconds),
		MaxAutomaticTokenAssociations: flexInt64(info.MaxAutomaticTokenAssociations),
	}
	out.Balance.Balance = flexUint64(info.Balance)
	if info.ContractAccountID != "" {
		out.ContractID = &info.ContractAccountID
	}
	return out
}

const accountInfoMethodPath = "/proto.CryptoService/getAccountInfo"
