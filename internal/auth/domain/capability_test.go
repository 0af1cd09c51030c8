package domain_test

import (
	"testing"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilities(t *testing.T) {
	t.Run("accepts known names and collapses duplicates", func(t *testing.T) {
		caps, err := domain.ParseCapabilities([]string{"readDevices", "scanDevices", "readDevices"})
		require.NoError(t, err)
		require.Equal(t, []domain.Capability{domain.CapReadDevices, domain.CapScanDevices}, caps)
	})

	t.Run("rejects unknown names whole", func(t *testing.T) {
		_, err := domain.ParseCapabilities([]string{"readDevices", "launchMissiles"})
		require.Error(t, err)

		var unknown domain.ErrUnknownCapability
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, "launchMissiles", unknown.Name)
	})

	t.Run("name matching is case sensitive", func(t *testing.T) {
		_, err := domain.ParseCapability("ReadDevices")
		require.Error(t, err)
	})
}

func TestCapabilityStorageRoundTrip(t *testing.T) {
	caps := []domain.Capability{domain.CapScanDevices, domain.CapReadDevices}

	s := domain.JoinCapabilities(caps)
	require.Equal(t, "readDevices scanDevices", s, "storage form is sorted")

	parsed, err := domain.ParseCapabilityString(s)
	require.NoError(t, err)
	require.ElementsMatch(t, caps, parsed)

	empty, err := domain.ParseCapabilityString("")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestCapabilitySetOps(t *testing.T) {
	base := []domain.Capability{domain.CapReadDevices, domain.CapScanDevices}

	t.Run("add unions without duplicates", func(t *testing.T) {
		got := domain.AddCapabilities(base, []domain.Capability{domain.CapScanDevices, domain.CapEditDevices})
		require.Equal(t, []domain.Capability{
			domain.CapReadDevices, domain.CapScanDevices, domain.CapEditDevices,
		}, got)
	})

	t.Run("remove is a no-op for absent members", func(t *testing.T) {
		got := domain.RemoveCapabilities(base, []domain.Capability{domain.CapDeleteDevices})
		require.Equal(t, base, got)
	})

	t.Run("remove drops present members", func(t *testing.T) {
		got := domain.RemoveCapabilities(base, []domain.Capability{domain.CapReadDevices})
		require.Equal(t, []domain.Capability{domain.CapScanDevices}, got)
	})
}
