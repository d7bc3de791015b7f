package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/provider"
	"github.com/pablopoggiog/send-it/internal/token"
)

// Confirm prompts the user with a yes/no question. Returns true for yes.
func Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", StyleWarning.Render(prompt))
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}

// ConfirmTransfer shows the details of a pending token transfer and asks
// for approval. It is the terminal stand-in for a wallet's signing prompt.
func ConfirmTransfer(p provider.TransferPrompt) bool {
	fmt.Println()
	fmt.Println(StyleTitle.Render("Review transfer"))
	fmt.Printf("  %s %s USDC\n", Meta("Amount:"), Val(token.FormatUnits(p.Amount, config.USDCDecimals)))
	fmt.Printf("  %s %s\n", Meta("From:  "), Addr(address.Truncate(p.From)))
	fmt.Printf("  %s %s\n", Meta("To:    "), Addr(p.To))
	fmt.Printf("  %s %s\n", Meta("Token: "), Addr(address.Truncate(p.Token)))
	fmt.Println()
	return Confirm("Sign and broadcast?")
}
