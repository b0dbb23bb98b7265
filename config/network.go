// Package config resolves the node pool, Mirror endpoint, and operator
// identity a Client needs from the environment or a JSON document.
// Signing and key storage are left to the caller; this package only
// resolves network/mirror/operator configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/submitter"
)

// Network names one of the four deployments a Config may target.
type Network int

const (
	Mainnet Network = iota
	Testnet
	Previewnet
	Custom
)

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Previewnet:
		return "previewnet"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseNetwork accepts the four network names case-insensitively.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	case "previewnet":
		return Previewnet, nil
	case "custom":
		return Custom, nil
	default:
		return 0, fmt.Errorf("config: unrecognized network %q", s)
	}
}

// seedNode pairs a node's operator-assigned account id with its
// consensus-submit address, the shape the network seed tables below and
// a custom configuration's `network` map both produce.
type seedNode struct {
	AccountID string
	Address   string
}

// defaultSeeds holds the four-node default pool for each non-custom
// network. Addresses are the conventional consensus-submit port 50211
// on each network's node fleet.
var defaultSeeds = map[Network][]seedNode{
	Mainnet: {
		{AccountID: "0.0.3", Address: "consensus-01.mainnet.ledger-network.example:50211"},
		{AccountID: "0.0.4", Address: "consensus-02.mainnet.ledger-network.example:50211"},
		{AccountID: "0.0.5", Address: "consensus-03.mainnet.ledger-network.example:50211"},
		{AccountID: "0.0.6", Address: "consensus-04.mainnet.ledger-network.example:50211"},
	},
	Testnet: {
		{AccountID: "0.0.3", Address: "consensus-01.testnet.ledger-network.example:50211"},
		{AccountID: "0.0.4", Address: "consensus-02.testnet.ledger-network.example:50211"},
		{AccountID: "0.0.5", Address: "consensus-03.testnet.ledger-network.example:50211"},
		{AccountID: "0.0.6", Address: "consensus-04.testnet.ledger-network.example:50211"},
	},
	Previewnet: {
		{AccountID: "0.0.3", Address: "consensus-01.previewnet.ledger-network.example:50211"},
		{AccountID: "0.0.4", Address: "consensus-02.previewnet.ledger-network.example:50211"},
		{AccountID: "0.0.5", Address: "consensus-03.previewnet.ledger-network.example:50211"},
		{AccountID: "0.0.6", Address: "consensus-04.previewnet.ledger-network.example:50211"},
	},
}

// defaultMirrorURLs holds each non-custom network's Mirror REST base.
var defaultMirrorURLs = map[Network]string{
	Mainnet:    "https://mainnet.mirror.ledger-network.example/api/v1",
	Testnet:    "https://testnet.mirror.ledger-network.example/api/v1",
	Previewnet: "https://previewnet.mirror.ledger-network.example/api/v1",
}

// defaultMirrorRPCEndpoints holds each non-custom network's Mirror
// streaming/unary RPC base, used for topic subscription and the
// account/token RPC-parity reads.
var defaultMirrorRPCEndpoints = map[Network]string{
	Mainnet:    "https://mainnet.mirror-grpc.ledger-network.example",
	Testnet:    "https://testnet.mirror-grpc.ledger-network.example",
	Previewnet: "https://previewnet.mirror-grpc.ledger-network.example",
}

// seedNodesFor returns network's default node pool, already parsed into
// submitter.NodeEndpoint values. Custom networks have no default and
// return an empty slice; the caller must supply nodes explicitly.
func seedNodesFor(network Network) ([]submitter.NodeEndpoint, error) {
	seeds := defaultSeeds[network]
	out := make([]submitter.NodeEndpoint, 0, len(seeds))
	for _, s := range seeds {
		accountID, err := ids.ParseEntityID(s.AccountID)
		if err != nil {
			return nil, fmt.Errorf("config: bad seed account id %q: %w", s.AccountID, err)
		}
		out = append(out, submitter.NodeEndpoint{AccountID: accountID, Address: s.Address})
	}
	return out, nil
}

// resolveMirrorNetwork translates a MIRROR_NETWORK value (a network name)
// into that network's default REST base URL, using network instead when
// mirrorNetwork is empty. It does not look at MIRROR_URL; callers that
// have an explicit URL use it without calling this function.
func resolveMirrorNetwork(network Network, mirrorNetwork string) (string, error) {
	n := network
	if mirrorNetwork != "" {
		parsed, err := ParseNetwork(mirrorNetwork)
		if err != nil {
			return "", err
		}
		n = parsed
	}
	url, ok := defaultMirrorURLs[n]
	if !ok {
		return "", fmt.Errorf("config: no default mirror URL for network %q", n)
	}
	return url, nil
}
