package config

import "strings"

// truthyValues are the GRPC_DEBUG_PAYLOADS values that enable debug
// payload logging.
var truthyValues = map[string]bool{
	"1": true, "true": true, "yes": true, "on": true, "enable": true,
}

func isTruthy(s string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(s))]
}

// lookupEnv finds key's value in a KEY=VALUE environment slice (the shape
// os.Environ() returns), so callers can pass a real or a test environment
// interchangeably.
func lookupEnv(environ []string, key string) (string, bool) {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):], true
		}
	}
	return "", false
}

// mergeEnv overlays the process environment's NETWORK, MIRROR_URL/
// MIRROR_NETWORK, OPERATOR_ID/OPERATOR_KEY, and GRPC_DEBUG_PAYLOADS onto
// cfg. Environment values always take priority over whatever a config
// file or default already set.
func mergeEnv(cfg *Config, environ []string) error {
	if v, ok := lookupEnv(environ, "NETWORK"); ok && v != "" {
		network, err := ParseNetwork(v)
		if err != nil {
			return err
		}
		cfg.Network = network
	}

	mirrorURL, hasMirrorURL := lookupEnv(environ, "MIRROR_URL")
	mirrorNetwork, hasMirrorNetwork := lookupEnv(environ, "MIRROR_NETWORK")
	switch {
	case hasMirrorURL && mirrorURL != "":
		cfg.MirrorURL = mirrorURL
	case hasMirrorNetwork && mirrorNetwork != "":
		url, err := resolveMirrorNetwork(cfg.Network, mirrorNetwork)
		if err != nil {
			return err
		}
		cfg.MirrorURL = url
	}

	accountID, _ := lookupEnv(environ, "OPERATOR_ID")
	key, _ := lookupEnv(environ, "OPERATOR_KEY")
	operator, err := parseOperator(accountID, key)
	if err != nil {
		return err
	}
	if operator != nil {
		cfg.Operator = operator
	}

	if v, ok := lookupEnv(environ, "GRPC_DEBUG_PAYLOADS"); ok {
		cfg.GRPCDebugPayloads = isTruthy(v)
	}

	return nil
}
