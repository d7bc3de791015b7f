package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"wallet", "connect", "disconnect", "status", "balance", "send", "watch", "checksum"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestRootShowsBanner(t *testing.T) {
	require.NotNil(t, rootCmd.Run, "bare invocation should print the banner")
}

func TestSendFlags(t *testing.T) {
	require.NotNil(t, sendCmd.Flags().Lookup("to"))
	require.NotNil(t, sendCmd.Flags().Lookup("amount"))
	require.NotNil(t, sendCmd.Flags().Lookup("yes"))
}

func TestRootConfigFlag(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("rpc"))
}
