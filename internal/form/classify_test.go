package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want Failure
	}{
		{"metamask rejection", "MetaMask Tx Signature: User denied transaction signature.", FailureCancelled},
		{"viem rejection", "User rejected the request.", FailureCancelled},
		{"core cancelled", "Transaction cancelled", FailureCancelled},
		{"core canceled us spelling", "transaction canceled by user", FailureCancelled},
		{"user cancelled", "user cancelled", FailureCancelled},
		{"insufficient funds", "insufficient funds for gas * price + value", FailureGas},
		{"intrinsic gas", "intrinsic gas too low", FailureGas},
		{"gas estimate", "gas required exceeds allowance (0)", FailureGas},
		{"out of gas", "out of gas", FailureGas},
		{"fee cap", "max fee per gas less than block base fee", FailureGas},
		{"revert", "execution reverted: ERC20: transfer amount exceeds balance", FailureGeneric},
		{"nonce", "nonce too low", FailureGeneric},
		{"empty", "", FailureGeneric},
		{"mixed case", "USER REJECTED the request", FailureCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.msg))
		})
	}
}

func TestFailureMessage(t *testing.T) {
	assert.Empty(t, FailureMessage(FailureCancelled))
	assert.Equal(t, MsgTxFailedGas, FailureMessage(FailureGas))
	assert.Equal(t, MsgTxFailed, FailureMessage(FailureGeneric))
}
