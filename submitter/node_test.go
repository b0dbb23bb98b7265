package submitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distledger/ledger-go/ids"
)

func newTestPool(n int) *NodePool {
	endpoints := make([]NodeEndpoint, n)
	for i := range endpoints {
		endpoints[i] = NodeEndpoint{
			AccountID: ids.EntityID{Num: uint64(i + 1)},
			Address:   "https://node" + string(rune('a'+i)) + ".example.com",
		}
	}
	return NewNodePool(endpoints, 0, 0)
}

func TestPickEligibleRoundRobin(t *testing.T) {
	p := newTestPool(3)
	first, err := p.PickEligible()
	require.NoError(t, err)
	second, err := p.PickEligible()
	require.NoError(t, err)
	third, err := p.PickEligible()
	require.NoError(t, err)
	fourth, err := p.PickEligible()
	require.NoError(t, err)

	assert.NotEqual(t, first.AccountID, second.AccountID)
	assert.NotEqual(t, second.AccountID, third.AccountID)
	assert.Equal(t, first.AccountID, fourth.AccountID)
}

func TestNoNodesConfigured(t *testing.T) {
	p := NewNodePool(nil, 0, 0)
	_, err := p.PickEligible()
	assert.ErrorIs(t, err, ErrNoNodesConfigured)
}

func TestRecordFailureQuarantinesAfterThreshold(t *testing.T) {
	p := NewNodePool([]NodeEndpoint{{AccountID: ids.EntityID{Num: 1}, Address: "a"}}, 3, time.Hour)
	node, err := p.PickEligible()
	require.NoError(t, err)

	p.RecordFailure(node)
	p.RecordFailure(node)
	assert.True(t, node.Healthy())

	p.RecordFailure(node)
	assert.False(t, node.Healthy())

	_, err = p.PickEligible()
	assert.ErrorIs(t, err, ErrNoHealthyNodes)
}

func TestCooldownElapsedPromotesNodeBack(t *testing.T) {
	p := NewNodePool([]NodeEndpoint{{AccountID: ids.EntityID{Num: 1}, Address: "a"}}, 1, time.Millisecond)
	node, err := p.PickEligible()
	require.NoError(t, err)
	p.RecordFailure(node)
	assert.False(t, node.Healthy())

	time.Sleep(5 * time.Millisecond)
	promoted, err := p.PickEligible()
	require.NoError(t, err)
	assert.True(t, promoted.Healthy())
}

func TestZeroCooldownDisablesQuarantine(t *testing.T) {
	p := NewNodePool([]NodeEndpoint{{AccountID: ids.EntityID{Num: 1}, Address: "a"}}, 1, 0)
	node, err := p.PickEligible()
	require.NoError(t, err)
	p.RecordFailure(node)
	assert.True(t, node.Healthy())

	_, err = p.PickEligible()
	require.NoError(t, err)
}

func TestRecordSuccessClearsFailures(t *testing.T) {
	p := NewNodePool([]NodeEndpoint{{AccountID: ids.EntityID{Num: 1}, Address: "a"}}, 3, time.Hour)
	node, err := p.PickEligible()
	require.NoError(t, err)
	p.RecordFailure(node)
	p.RecordFailure(node)
	p.RecordSuccess(node)

	snap := p.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 0, snap[0].failures)
	assert.True(t, snap[0].healthy)
}
