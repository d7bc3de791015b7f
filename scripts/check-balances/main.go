// check-balances: queries AVAX and USDC balances on Fuji for a set of
// addresses in parallel and prints a summary table.
//
// Run from the module root:
//
//	go run ./scripts/check-balances 0xAddr1 0xAddr2 ...
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/token"
)

const rpcTimeout = 12 * time.Second

type result struct {
	addr string
	avax string
	usdc string
	err  string
}

func main() {
	addrs := os.Args[1:]
	if len(addrs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: check-balances <address> [address ...]")
		os.Exit(2)
	}
	for _, a := range addrs {
		if !address.IsHex(a) {
			fmt.Fprintf(os.Stderr, "not a C-Chain address: %s\n", a)
			os.Exit(2)
		}
	}

	client := chain.NewClient(config.DefaultRPCURL)
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	results := make([]result, len(addrs))
	var wg sync.WaitGroup
	for i, a := range addrs {
		wg.Add(1)
		go func(i int, a string) {
			defer wg.Done()
			r := result{addr: a}
			native, err := client.Balance(ctx, a)
			if err != nil {
				r.err = err.Error()
				results[i] = r
				return
			}
			usdc, err := client.TokenBalance(ctx, config.USDCTokenAddress, a)
			if err != nil {
				r.err = err.Error()
				results[i] = r
				return
			}
			r.avax = token.FormatUnits(native, 18)
			r.usdc = token.FormatFixed(usdc, config.USDCDecimals, config.USDCDecimals)
			results[i] = r
		}(i, a)
	}
	wg.Wait()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tAVAX\tUSDC")
	for _, r := range results {
		if r.err != "" {
			fmt.Fprintf(w, "%s\terror\t%s\n", address.Truncate(r.addr), r.err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", address.Truncate(r.addr), r.avax, r.usdc)
	}
	w.Flush() //nolint:errcheck
}
