package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/submitter"
)

// fileDoc is the raw shape of a JSON configuration document:
// `network` (string or `{"s.r.n": "host:port"}` map),
// `mirrorNetwork` (string or array), `operator.{accountId,privateKey}`,
// `grpcDebugPayloads` (bool/string/number).
type fileDoc struct {
	Network           json.RawMessage `json:"network"`
	MirrorNetwork     json.RawMessage `json:"mirrorNetwork"`
	Operator          *fileOperator   `json:"operator"`
	GRPCDebugPayloads json.RawMessage `json:"grpcDebugPayloads"`
}

type fileOperator struct {
	AccountID  string `json:"accountId"`
	PrivateKey string `json:"privateKey"`
}

// parsedFileConfig is fileDoc after its polymorphic fields have been
// normalized into concrete values.
type parsedFileConfig struct {
	networkSet    bool
	network       Network
	customNodes   []submitter.NodeEndpoint
	mirrorNetwork string
	operator      *Operator
	debugPayloads *bool
}

func loadFile(path string) (parsedFileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parsedFileConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return parsedFileConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return parseFileDoc(doc)
}

func parseFileDoc(doc fileDoc) (parsedFileConfig, error) {
	var out parsedFileConfig

	if len(doc.Network) > 0 {
		network, nodes, err := parseNetworkField(doc.Network)
		if err != nil {
			return parsedFileConfig{}, err
		}
		out.networkSet = true
		out.network = network
		out.customNodes = nodes
	}

	if len(doc.MirrorNetwork) > 0 {
		mirrorNetwork, err := parseMirrorNetworkField(doc.MirrorNetwork)
		if err != nil {
			return parsedFileConfig{}, err
		}
		out.mirrorNetwork = mirrorNetwork
	}

	if doc.Operator != nil {
		operator, err := parseOperator(doc.Operator.AccountID, doc.Operator.PrivateKey)
		if err != nil {
			return parsedFileConfig{}, err
		}
		out.operator = operator
	}

	if len(doc.GRPCDebugPayloads) > 0 {
		v, err := parseDebugPayloadsField(doc.GRPCDebugPayloads)
		if err != nil {
			return parsedFileConfig{}, err
		}
		out.debugPayloads = &v
	}

	return out, nil
}

// parseNetworkField accepts either a bare network name string or an
// explicit `{"s.r.n": "host:port"}` custom node map, in which case the
// resolved network is always Custom.
func parseNetworkField(raw json.RawMessage) (Network, []submitter.NodeEndpoint, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		network, err := ParseNetwork(name)
		return network, nil, err
	}

	var nodeMap map[string]string
	if err := json.Unmarshal(raw, &nodeMap); err != nil {
		return 0, nil, fmt.Errorf("config: \"network\" must be a string or an account-id-to-address map: %w", err)
	}
	nodes := make([]submitter.NodeEndpoint, 0, len(nodeMap))
	for accountID, address := range nodeMap {
		parsedID, err := ids.ParseEntityID(accountID)
		if err != nil {
			return 0, nil, fmt.Errorf("config: bad custom node account id %q: %w", accountID, err)
		}
		nodes = append(nodes, submitter.NodeEndpoint{AccountID: parsedID, Address: address})
	}
	return Custom, nodes, nil
}

// parseMirrorNetworkField accepts a bare network name string or an array
// of strings, of which only the first element is meaningful here (a list
// form exists in comparable SDKs for multi-endpoint mirror pools; this
// client's single-Client-per-endpoint model only needs one).
func parseMirrorNetworkField(raw json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", fmt.Errorf("config: \"mirrorNetwork\" must be a string or an array of strings: %w", err)
	}
	if len(list) == 0 {
		return "", nil
	}
	return list[0], nil
}

// parseDebugPayloadsField accepts a JSON bool, a truthy/falsy string, or
// a number (nonzero is true), since hand-edited config files commonly
// write this field as any of the three.
func parseDebugPayloadsField(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return isTruthy(s), nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("config: \"grpcDebugPayloads\" must be a bool, string, or number")
}

// mergeFile overlays a parsed file config onto cfg. File values are
// overridden by the environment in a later merge step.
func mergeFile(cfg *Config, file parsedFileConfig) error {
	if file.networkSet {
		cfg.Network = file.network
	}
	if len(file.customNodes) > 0 {
		cfg.Nodes = file.customNodes
	}
	if file.mirrorNetwork != "" {
		url, err := resolveMirrorNetwork(cfg.Network, file.mirrorNetwork)
		if err != nil {
			return err
		}
		cfg.MirrorURL = url
	}
	if file.operator != nil {
		cfg.Operator = file.operator
	}
	if file.debugPayloads != nil {
		cfg.GRPCDebugPayloads = *file.debugPayloads
	}
	return nil
}
