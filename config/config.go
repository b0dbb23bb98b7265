package config

import (
	"github.com/distledger/ledger-go/submitter"
)

// Config is the fully resolved set of inputs a Client needs: the node
// pool to submit through, the Mirror REST/RPC endpoints to read from, an
// optional operator identity, and the debug-payload logging toggle.
type Config struct {
	Network           Network
	Nodes             []submitter.NodeEndpoint
	MirrorURL         string
	MirrorRPCEndpoint string
	Operator          *Operator
	GRPCDebugPayloads bool
}

// Resolve builds a Config by layering, in increasing priority: the
// network's built-in defaults, a JSON config file (if filePath is
// non-empty), and the process environment. Each layer only overrides
// fields the layer below actually set.
func Resolve(filePath string, environ []string) (Config, error) {
	cfg := Config{Network: Testnet}

	if filePath != "" {
		fileCfg, err := loadFile(filePath)
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, fileCfg); err != nil {
			return Config{}, err
		}
	}

	if err := mergeEnv(&cfg, environ); err != nil {
		return Config{}, err
	}

	if len(cfg.Nodes) == 0 && cfg.Network != Custom {
		nodes, err := seedNodesFor(cfg.Network)
		if err != nil {
			return Config{}, err
		}
		cfg.Nodes = nodes
	}

	if cfg.MirrorURL == "" && cfg.Network != Custom {
		url, err := resolveMirrorNetwork(cfg.Network, "")
		if err != nil {
			return Config{}, err
		}
		cfg.MirrorURL = url
	}

	if cfg.MirrorRPCEndpoint == "" {
		if endpoint, ok := defaultMirrorRPCEndpoints[cfg.Network]; ok {
			cfg.MirrorRPCEndpoint = endpoint
		}
	}

	return cfg, nil
}
