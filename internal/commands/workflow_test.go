package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetfin-dev/fleetfin/internal/auditlog"
)

func TestWorkflow_DepositWithdrawBalance(t *testing.T) {
	dir := initBooks(t)

	out, err := runFleetfin(t, "account", "open", "A-001", "--owner", "Dupont", "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFleetfin(t, "deposit", "A-001", "1000.00", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "balance 1000.00")

	out, err = runFleetfin(t, "installment", "A-001", "300.00", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "balance 700.00")

	// Over-withdrawal is rejected and leaves the balance untouched.
	out, err = runFleetfin(t, "withdraw", "A-001", "800.00", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "insufficient funds")

	out, err = runFleetfin(t, "balance", "A-001", "--dir", dir)
	require.NoError(t, err, out)
	assert.Equal(t, "700.00", strings.TrimSpace(out))

	// The month file holds the two booked transactions only.
	out, err = runFleetfin(t, "transactions", "A-001", "--dir", dir)
	require.NoError(t, err, out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
}

func TestWorkflow_Bilan(t *testing.T) {
	dir := initBooks(t)

	out, err := runFleetfin(t, "account", "open", "A-001", "--owner", "Dupont", "--dir", dir)
	require.NoError(t, err, out)
	out, err = runFleetfin(t, "deposit", "A-001", "1000.00", "--dir", dir)
	require.NoError(t, err, out)
	out, err = runFleetfin(t, "installment", "A-001", "300.00", "--dir", dir)
	require.NoError(t, err, out)

	period := time.Now().UTC().Format("2006-01")
	out, err = runFleetfin(t, "bilan", period, "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "revenue:       1000.00")
	assert.Contains(t, out, "solde:         700.00")
	assert.Contains(t, out, "margin:        70%")
}

func TestWorkflow_VehicleAndTCO(t *testing.T) {
	dir := initBooks(t)

	out, err := runFleetfin(t, "vehicle", "add", "V-001",
		"--name", "Kangoo 1", "--cost", "18000.00", "--km", "42000",
		"--financed", "10000.00", "--rate", "6", "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFleetfin(t, "vehicle", "list", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "financed 10000.00 @ 6%")

	out, err = runFleetfin(t, "tco", "V-001", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "financing 1599.80")

	out, err = runFleetfin(t, "financing", "show", "V-001", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "193.33")

	_, err = runFleetfin(t, "tco", "V-999", "--dir", dir)
	require.Error(t, err, "unknown vehicle must fail")
}

func TestWorkflow_ImportGarageFeed(t *testing.T) {
	dir := initBooks(t)

	feed := "date,vehicle_id,work_type,amount,description\n" +
		"2025-01-05,V-001,revision,120.00,oil and filters\n" +
		"2025-01-20,V-001,insurance,55.50,annual renewal\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "garage-jan.csv"), []byte(feed), 0o644))

	out, err := runFleetfin(t, "import", "--format", "garage", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 costs, 0 revenues")

	assert.FileExists(t, filepath.Join(dir, "costs.csv"))
	assert.FileExists(t, filepath.Join(dir, "import", "processed", "garage-jan.csv"))

	// Re-running finds nothing left to ingest.
	out, err = runFleetfin(t, "import", "--format", "garage", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Nothing to import")
}

func TestWorkflow_Verify(t *testing.T) {
	dir := initBooks(t)

	out, err := runFleetfin(t, "account", "open", "A-001", "--owner", "Dupont", "--dir", dir)
	require.NoError(t, err, out)
	out, err = runFleetfin(t, "deposit", "A-001", "250.00", "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFleetfin(t, "verify", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "OK: 1 transactions verified")
}

func TestWorkflow_AuditTrail(t *testing.T) {
	dir := initBooks(t)

	out, err := runFleetfin(t, "account", "open", "A-001", "--owner", "Dupont", "--dir", dir)
	require.NoError(t, err, out)
	out, err = runFleetfin(t, "deposit", "A-001", "100.00", "--dir", dir)
	require.NoError(t, err, out)
	_, _ = runFleetfin(t, "withdraw", "A-001", "900.00", "--dir", dir)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "open", entries[0].Action)
	assert.Equal(t, "ok", entries[1].Result)
	assert.Contains(t, entries[2].Result, "insufficient funds")
}
