package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", ""}, args...))

	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCartCommands(t *testing.T) {
	t.Setenv("COINVAULT_CART_DB", filepath.Join(t.TempDir(), "cart.db"))
	t.Setenv("COINVAULT_LOG_LEVEL", "error")

	assert.Contains(t, run(t, "cart", "list"), "cart is empty")

	out := run(t, "cart", "add", "1", "Roman Denarius", "120", "2")
	assert.Contains(t, out, "Roman Denarius")
	assert.Contains(t, out, "240.00")

	run(t, "cart", "add", "7", "Assignat", "35.50")

	out = run(t, "cart", "list")
	assert.Contains(t, out, "Assignat")
	assert.Contains(t, out, "275.50", "total survives reopening the file")
	assert.Contains(t, out, "TOTAL")

	out = run(t, "cart", "set", "1", "0")
	assert.NotContains(t, out, "Roman Denarius")

	run(t, "cart", "clear")
	assert.Contains(t, run(t, "cart", "list"), "cart is empty")
}

func TestCartArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad id", args: []string{"cart", "remove", "abc"}},
		{name: "zero id", args: []string{"cart", "remove", "0"}},
		{name: "bad price", args: []string{"cart", "add", "1", "Coin", "cheap"}},
		{name: "negative price", args: []string{"cart", "add", "1", "Coin", "-1"}},
		{name: "zero quantity", args: []string{"cart", "add", "1", "Coin", "1", "0"}},
		{name: "bad set quantity", args: []string{"cart", "set", "1", "many"}},
		{name: "quantity over cap", args: []string{"cart", "add", "1", "Coin", "1", "4294967297"}},
		{name: "set quantity over cap", args: []string{"cart", "set", "1", "10000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COINVAULT_CART_DB", filepath.Join(t.TempDir(), "cart.db"))
			t.Setenv("COINVAULT_LOG_LEVEL", "error")

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(append([]string{"--config", ""}, tt.args...))

			require.Error(t, rootCmd.Execute())
		})
	}
}
