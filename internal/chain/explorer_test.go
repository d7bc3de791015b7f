package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplorerTxURL(t *testing.T) {
	assert.Equal(t,
		"https://subnets-test.avax.network/c-chain/tx/0xabc",
		ExplorerTxURL("https://subnets-test.avax.network/c-chain", "0xabc"))
}

func TestExplorerTxURLTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t,
		"https://subnets-test.avax.network/c-chain/tx/0xabc",
		ExplorerTxURL("https://subnets-test.avax.network/c-chain/", "0xabc"))
}

func TestExplorerTxURLEmpty(t *testing.T) {
	assert.Equal(t, "", ExplorerTxURL("", "0xabc"))
	assert.Equal(t, "", ExplorerTxURL("https://example.com", ""))
}

func TestExplorerAddressURL(t *testing.T) {
	assert.Equal(t,
		"https://subnets-test.avax.network/c-chain/address/0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		ExplorerAddressURL("https://subnets-test.avax.network/c-chain", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"))
}
