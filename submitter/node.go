// Package submitter implements node selection, health tracking, and submit
// orchestration across transports. Health tracking is a small circuit
// breaker (mutex-guarded per-endpoint state, consecutive-failure
// counter, cooldown window) over a fixed node pool with round-robin
// eligibility: this module has a small, known set of consensus nodes
// rather than an open-ended list of providers, so a slice with a saved
// rotation index fits better than a map.
package submitter

import (
	"sync"
	"time"

	"github.com/distledger/ledger-go/ids"
)

const (
	defaultFailureThreshold = 3
	defaultCooldown         = 5 * time.Second
)

// NodeEndpoint is one consensus node in the pool.
type NodeEndpoint struct {
	AccountID    ids.EntityID
	Address      string
	healthy      bool
	failures     int
	cooldownUntil time.Time
}

// Healthy reports the node's last-known health state, ignoring any
// elapsed cooldown (use NodePool.PickEligible for the live check).
func (n NodeEndpoint) Healthy() bool { return n.healthy }

// NodePool holds the configured consensus nodes and their health state,
// protected by a single mutex around the select/record-success/
// record-failure triplet per the concurrency model's requirement that
// these stay consistent under concurrent submissions.
type NodePool struct {
	mu    sync.Mutex
	nodes []*NodeEndpoint
	index int

	failureThreshold int
	cooldown         time.Duration
}

// NewNodePool builds a pool from the given endpoints, all initially
// healthy. A failureThreshold of zero or less becomes the default of 3.
// cooldown is used as given: a zero cooldown disables quarantine (nodes
// marked unhealthy become eligible again immediately).
func NewNodePool(endpoints []NodeEndpoint, failureThreshold int, cooldown time.Duration) *NodePool {
	if failureThreshold <= 0 {
		failureThreshold = defaultFailureThreshold
	}
	nodes := make([]*NodeEndpoint, len(endpoints))
	for i := range endpoints {
		e := endpoints[i]
		e.healthy = true
		nodes[i] = &e
	}
	return &NodePool{
		nodes:            nodes,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
	}
}

// Len returns the number of configured nodes.
func (p *NodePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.nodes)
}

// PickEligible returns the next eligible node using round-robin over the
// pool: starting at the saved index, the first node that is healthy (or
// whose cooldown has elapsed, in which case it is promoted back to
// healthy with a cleared failure counter) is returned, and the index is
// advanced one past it. Returns ErrNoHealthyNodes if none qualify.
func (p *NodePool) PickEligible() (*NodeEndpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.nodes) == 0 {
		return nil, ErrNoNodesConfigured
	}

	now := time.Now()
	for i := 0; i < len(p.nodes); i++ {
		pos := (p.index + i) % len(p.nodes)
		n := p.nodes[pos]
		if !n.healthy && !n.cooldownUntil.IsZero() && !now.Before(n.cooldownUntil) {
			n.healthy = true
			n.failures = 0
			n.cooldownUntil = time.Time{}
		}
		if n.healthy {
			p.index = (pos + 1) % len(p.nodes)
			return n, nil
		}
	}
	return nil, ErrNoHealthyNodes
}

// RecordSuccess clears a node's failure counter and cooldown and marks it
// healthy.
func (p *NodePool) RecordSuccess(n *NodeEndpoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n.failures = 0
	n.cooldownUntil = time.Time{}
	n.healthy = true
}

// RecordFailure increments a node's consecutive-failure counter; once it
// reaches the pool's failure threshold, the node is marked unhealthy and
// put on cooldown. A zero cooldown duration disables quarantine (the node
// is never actually marked unhealthy).
func (p *NodePool) RecordFailure(n *NodeEndpoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n.failures++
	if n.failures >= p.failureThreshold && p.cooldown > 0 {
		n.healthy = false
		n.cooldownUntil = time.Now().Add(p.cooldown)
	}
}

// Snapshot returns a copy of every node's current state, for diagnostics.
func (p *NodePool) Snapshot() []NodeEndpoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]NodeEndpoint, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = *n
	}
	return out
}
