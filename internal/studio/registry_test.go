package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldByName(t *testing.T, name string) Field {
	t.Helper()
	for _, f := range Registry {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no registry field named %q", name)
	return Field{}
}

func TestRenderDecimal(t *testing.T) {
	amount := fieldByName(t, "amount")

	t.Run("formats to two decimals", func(t *testing.T) {
		assert.Equal(t, "5000.00", amount.Render("5000"))
		assert.Equal(t, "94.72", amount.Render("94.7200"))
		assert.Equal(t, "0.10", amount.Render("0.1"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", amount.Render(""))
	})

	t.Run("unparsable renders as zero", func(t *testing.T) {
		assert.Equal(t, "0.00", amount.Render("abc"))
	})
}

func TestRenderVolume(t *testing.T) {
	volume := fieldByName(t, "volume")

	t.Run("appends unit", func(t *testing.T) {
		assert.Equal(t, "52.79 L", volume.Render("52.79"))
	})

	t.Run("existing suffix untouched", func(t *testing.T) {
		assert.Equal(t, "52.79L", volume.Render("52.79L"))
		assert.Equal(t, "52.79 L", volume.Render("52.79 L"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", volume.Render(""))
	})
}

func TestRenderText(t *testing.T) {
	station := fieldByName(t, "stationName")
	assert.Equal(t, "Metro Petro Pump", station.Render("Metro Petro Pump"))
	assert.Equal(t, "", station.Render(""))
}

func TestRegistryCoversEveryField(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Registry {
		assert.False(t, seen[f.Name], "duplicate registry field %q", f.Name)
		seen[f.Name] = true
	}
	assert.Len(t, Registry, 19)
}
