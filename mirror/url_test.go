package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURLNoQuery(t *testing.T) {
	got := buildURL("https://host/api/v1", "/accounts/0.0.100", nil)
	assert.Equal(t, "https://host/api/v1/accounts/0.0.100", got)
}

func TestBuildURLWithQueryPreservesOrder(t *testing.T) {
	got := buildURL("https://host/api/v1/", "accounts", []queryParam{
		{Key: "limit", Value: "5"},
		{Key: "token.id", Value: "0.0.9001"},
	})
	assert.Equal(t, "https://host/api/v1/accounts?limit=5&token.id=0.0.9001", got)
}

func TestResolveNextAbsoluteURL(t *testing.T) {
	got := resolveNext("https://host/api/v1", "https://other-host/api/v1/accounts/1")
	assert.Equal(t, "https://other-host/api/v1/accounts/1", got)
}

func TestResolveNextRelativePath(t *testing.T) {
	got := resolveNext("https://host/api/v1", "/api/v1/accounts?timestamp=lt:123")
	assert.Equal(t, "https://host/api/v1/accounts?timestamp=lt:123", got)
}

func TestResolveNextBareQuery(t *testing.T) {
	got := resolveNext("https://host/api/v1/accounts", "?timestamp=lt:123")
	assert.Equal(t, "https://host/api/v1/accounts?timestamp=lt:123", got)
}

func TestResolveNextGrpcPrefix(t *testing.T) {
	got := resolveNext("https://host/api/v1", "grpc:https://mirror-host/continue")
	assert.Equal(t, "https://mirror-host/continue", got)
}

func TestResolveNextBareSuffix(t *testing.T) {
	got := resolveNext("https://host/api/v1/topics/1/messages", "cursor-token")
	assert.Equal(t, "https://host/api/v1/topics/1/messages/cursor-token", got)
}
