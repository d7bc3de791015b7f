package chain

import "strings"

// ExplorerTxURL builds the block-explorer deep link for a transaction,
// e.g. https://subnets-test.avax.network/c-chain/tx/0xabc...
func ExplorerTxURL(base, hash string) string {
	if base == "" || hash == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/tx/" + hash
}

// ExplorerAddressURL builds the explorer link for an address.
func ExplorerAddressURL(base, addr string) string {
	if base == "" || addr == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/address/" + addr
}
