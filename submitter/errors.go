package submitter

import "errors"

// ErrNoNodesConfigured is returned when the node pool has zero entries.
var ErrNoNodesConfigured = errors.New("submitter: no nodes configured")

// ErrNoHealthyNodes is returned when every node in the pool is unhealthy
// and no cooldown has elapsed.
var ErrNoHealthyNodes = errors.New("submitter: no healthy nodes available")
