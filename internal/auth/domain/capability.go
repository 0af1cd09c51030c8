package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Capability names one gated surface of the inventory system. The set is
// closed: permission updates naming anything else are rejected whole.
type Capability string

const (
	CapReadDevices       Capability = "readDevices"
	CapCreateDevices     Capability = "createDevices"
	CapEditDevices       Capability = "editDevices"
	CapDeleteDevices     Capability = "deleteDevices"
	CapScanDevices       Capability = "scanDevices"
	CapBulkUploadDevices Capability = "bulkUploadDevices"
	CapManageWarehouses  Capability = "manageWarehouses"
	CapManageDonors      Capability = "manageDonors"
	CapManageShipments   Capability = "manageShipments"
	CapGenerateQRCodes   Capability = "generateQRCodes"
)

// AllCapabilities lists every recognised capability in stable order.
var AllCapabilities = []Capability{
	CapReadDevices,
	CapCreateDevices,
	CapEditDevices,
	CapDeleteDevices,
	CapScanDevices,
	CapBulkUploadDevices,
	CapManageWarehouses,
	CapManageDonors,
	CapManageShipments,
	CapGenerateQRCodes,
}

var capabilitySet = func() map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(AllCapabilities))
	for _, c := range AllCapabilities {
		m[c] = struct{}{}
	}
	return m
}()

// ErrUnknownCapability wraps the offending name so callers can report it.
type ErrUnknownCapability struct {
	Name string
}

func (e ErrUnknownCapability) Error() string {
	return fmt.Sprintf("unknown capability %q", e.Name)
}

// ParseCapability validates a single capability name.
func ParseCapability(name string) (Capability, error) {
	c := Capability(name)
	if _, ok := capabilitySet[c]; !ok {
		return "", ErrUnknownCapability{Name: name}
	}
	return c, nil
}

// ParseCapabilities validates a list of names, failing on the first unknown
// one. Duplicates are collapsed.
func ParseCapabilities(names []string) ([]Capability, error) {
	seen := make(map[Capability]struct{}, len(names))
	out := make([]Capability, 0, len(names))
	for _, name := range names {
		c, err := ParseCapability(name)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// ParseCapabilityString splits the space-delimited storage form.
func ParseCapabilityString(s string) ([]Capability, error) {
	return ParseCapabilities(strings.Fields(s))
}

// JoinCapabilities renders the space-delimited storage form in sorted order
// so equal sets serialize identically.
func JoinCapabilities(caps []Capability) string {
	names := CapabilityNames(caps)
	sort.Strings(names)
	return strings.Join(names, " ")
}

// CapabilityNames converts a capability list to plain strings.
func CapabilityNames(caps []Capability) []string {
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = string(c)
	}
	return names
}

// AddCapabilities returns the union of base and add, preserving base order
// and appending new entries in add order.
func AddCapabilities(base, add []Capability) []Capability {
	seen := make(map[Capability]struct{}, len(base)+len(add))
	out := make([]Capability, 0, len(base)+len(add))
	for _, c := range base {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for _, c := range add {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// RemoveCapabilities returns base without any member of remove. Removing a
// capability the user does not hold is a no-op.
func RemoveCapabilities(base, remove []Capability) []Capability {
	drop := make(map[Capability]struct{}, len(remove))
	for _, c := range remove {
		drop[c] = struct{}{}
	}
	out := make([]Capability, 0, len(base))
	for _, c := range base {
		if _, gone := drop[c]; gone {
			continue
		}
		out = append(out, c)
	}
	return out
}
