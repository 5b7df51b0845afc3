package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := []string{}
	for _, sub := range CmdUdcn.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"run", "send", "serve", "stats"})

	iface := CmdUdcn.PersistentFlags().Lookup("iface")
	require.NotNil(t, iface)
	assert.Equal(t, "udcn0", iface.DefValue)

	run, _, err := CmdUdcn.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "0", run.Flags().Lookup("stats-interval").DefValue)
}
