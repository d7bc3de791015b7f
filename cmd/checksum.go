package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/ui"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <address>",
	Short: "Validate or convert an address to EIP-55 checksum form",
	Long: `Convert a C-Chain address to its EIP-55 checksummed form and report
whether the input was already correctly checksummed.

Examples:
  send-it checksum 0xd8da6bf26964af9d7eed9e03e53415d37aa96045
  send-it checksum 0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := checksumReport(args[0])
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	},
}

func checksumReport(input string) (string, error) {
	sum := address.Checksum(input)
	if sum == "" {
		return "", fmt.Errorf("%q is not a valid C-Chain address", input)
	}

	var b strings.Builder
	b.WriteString(ui.Meta("Checksummed ") + ui.Addr(sum) + "\n")
	switch address.VerifyChecksum(input) {
	case address.ChecksumValid:
		b.WriteString(ui.Success("address is correctly checksummed"))
	case address.ChecksumMissing:
		b.WriteString(ui.Warn("valid address but not checksummed"))
	default:
		b.WriteString(ui.Err("checksum mismatch"))
	}
	return b.String(), nil
}
