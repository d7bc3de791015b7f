// Package contract encodes and decodes the slice of the ERC-20 interface
// this app touches: transfer calldata, balanceOf calls, and Transfer event
// logs.
package contract

import (
	"fmt"
	"math/big"
	"strings"
)

// 4-byte function selectors.
const (
	TransferSelector  = "a9059cbb" // transfer(address,uint256)
	BalanceOfSelector = "70a08231" // balanceOf(address)
)

// TransferEventTopic is keccak256("Transfer(address,address,uint256)").
const TransferEventTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

// EncodeTransfer builds transfer(to, amount) calldata.
func EncodeTransfer(to string, amount *big.Int) string {
	return "0x" + TransferSelector + pad32(strings.TrimPrefix(to, "0x")) + pad32(amount.Text(16))
}

// EncodeBalanceOf builds balanceOf(owner) calldata.
func EncodeBalanceOf(owner string) string {
	return "0x" + BalanceOfSelector + pad32(strings.TrimPrefix(owner, "0x"))
}

// TransferEvent is a decoded ERC-20 Transfer log.
type TransferEvent struct {
	From   string
	To     string
	Amount *big.Int
}

// ParseTransfer decodes a Transfer event from its topics and data. Returns
// false when the log is not an ERC-20 Transfer.
func ParseTransfer(topics []string, data string) (TransferEvent, bool) {
	if len(topics) != 3 || !strings.EqualFold(topics[0], TransferEventTopic) {
		return TransferEvent{}, false
	}
	amount, ok := new(big.Int).SetString(strings.TrimPrefix(data, "0x"), 16)
	if !ok {
		return TransferEvent{}, false
	}
	return TransferEvent{
		From:   topicAddress(topics[1]),
		To:     topicAddress(topics[2]),
		Amount: amount,
	}, true
}

// topicAddress extracts the address from a 32-byte indexed topic.
func topicAddress(topic string) string {
	t := strings.TrimPrefix(topic, "0x")
	if len(t) < 40 {
		return "0x" + t
	}
	return "0x" + strings.ToLower(t[len(t)-40:])
}

// pad32 left-pads a hex string to a 32-byte word.
func pad32(h string) string {
	return fmt.Sprintf("%064s", strings.ToLower(h))
}
