package form

import "strings"

// Failure buckets a submission error by how it should surface to the user.
type Failure int

const (
	// FailureGeneric shows the generic retry message.
	FailureGeneric Failure = iota
	// FailureCancelled means the user declined the wallet prompt; the
	// pending notification is dismissed and no error is shown.
	FailureCancelled
	// FailureGas means the node refused the transaction for fee reasons;
	// shows the gas-specific message.
	FailureGas
)

// User-facing submission failure messages.
const (
	MsgTxFailed    = "Transaction failed. Please try again."
	MsgTxFailedGas = "Transaction failed. Likely insufficient AVAX for gas."
)

var cancelledSubstrings = []string{
	"user rejected",
	"user denied",
	"user cancelled",
	"user canceled",
	"transaction cancelled",
	"transaction canceled",
}

var gasSubstrings = []string{
	"insufficient funds",
	"gas required exceeds",
	"intrinsic gas",
	"out of gas",
	"exceeds block gas limit",
	"max fee per gas",
}

// Classify buckets an error message. Substring matching against provider
// error text is fragile by nature, so it lives here as one pure function
// rather than inline in the UI.
func Classify(msg string) Failure {
	m := strings.ToLower(msg)
	for _, s := range cancelledSubstrings {
		if strings.Contains(m, s) {
			return FailureCancelled
		}
	}
	for _, s := range gasSubstrings {
		if strings.Contains(m, s) {
			return FailureGas
		}
	}
	return FailureGeneric
}

// FailureMessage returns the user-facing message for a bucket, or "" for
// the silent cancellation bucket.
func FailureMessage(f Failure) string {
	switch f {
	case FailureCancelled:
		return ""
	case FailureGas:
		return MsgTxFailedGas
	default:
		return MsgTxFailed
	}
}
