package studio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-backend/internal/models"
)

func TestPreviewSyncCommitsChangedSlots(t *testing.T) {
	p := NewPreviewWithDelay(0)

	fields := models.ReceiptFields{StationName: "Metro Petro Pump", Amount: "5000", Volume: "52.79L"}
	p.Sync(&fields)

	slots := p.Slots()
	assert.Equal(t, "Metro Petro Pump", slots["stationName"])
	assert.Equal(t, "5000.00", slots["amount"])
	assert.Equal(t, "52.79L", slots["volume"])
}

func TestPreviewPulseOnEverySync(t *testing.T) {
	p := NewPreviewWithDelay(0)
	fields := models.ReceiptFields{Amount: "100"}

	p.Sync(&fields)
	p.Sync(&fields)
	p.Sync(&fields)

	// The pulse retriggers even when no slot changed.
	assert.Equal(t, uint64(3), p.Pulse())
}

func TestPreviewUnchangedSlotKeepsValue(t *testing.T) {
	p := NewPreviewWithDelay(0)
	fields := models.ReceiptFields{StationName: "City Point Fuel Centre"}

	p.Sync(&fields)
	before := p.Slots()["stationName"]

	fields.Amount = "250"
	p.Sync(&fields)

	assert.Equal(t, before, p.Slots()["stationName"])
	assert.Equal(t, "250.00", p.Slots()["amount"])
}

func TestPreviewTransitionDelaysCommit(t *testing.T) {
	p := NewPreviewWithDelay(10 * time.Millisecond)
	fields := models.ReceiptFields{Amount: "100"}

	p.Sync(&fields)
	assert.Empty(t, p.Slots()["amount"], "slot must not swap before the transition")

	require.Eventually(t, func() bool {
		return p.Slots()["amount"] == "100.00"
	}, time.Second, 2*time.Millisecond)
}

func TestPreviewRapidEditsKeepLatestValue(t *testing.T) {
	p := NewPreviewWithDelay(5 * time.Millisecond)

	fields := models.ReceiptFields{Amount: "100"}
	p.Sync(&fields)
	fields.Amount = "200"
	p.Sync(&fields)
	fields.Amount = "300"
	p.Sync(&fields)

	require.Eventually(t, func() bool {
		return p.Slots()["amount"] == "300.00"
	}, time.Second, 2*time.Millisecond)

	// The final committed value never regresses to a stale edit.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "300.00", p.Slots()["amount"])
}
