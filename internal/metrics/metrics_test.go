package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/w3mint/internal/metrics"
)

func TestCounters(t *testing.T) {
	m := metrics.New()
	m.Intent("mint", metrics.OutcomeOK)
	m.Intent("mint", metrics.OutcomeOK)
	m.Intent("connect", metrics.OutcomeBusy)
	m.Notification("chainChanged")
	m.MintRevert("")
	m.MintRevert("AddressReachedPublicMintingLimit")

	n, err := testutil.GatherAndCount(m.Registry(), "w3mint_intents_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "two label sets")

	n, err = testutil.GatherAndCount(m.Registry(), "w3mint_mint_reverts_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(m.Registry(), "w3mint_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilRecorder(t *testing.T) {
	var m *metrics.Recorder
	assert.NotPanics(t, func() {
		m.Intent("mint", metrics.OutcomeOK)
		m.Notification("connect")
		m.MintRevert("x")
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.Intent("mint", metrics.OutcomeError)
	path := filepath.Join(t.TempDir(), "w3mint.prom")

	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `w3mint_intents_total{intent="mint",outcome="error"} 1`)
}
