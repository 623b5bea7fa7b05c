package device

import (
	"strings"
	"testing"
)

func TestMachineGUIDStable(t *testing.T) {
	first := MachineGUID()
	second := MachineGUID()

	if first == "" {
		t.Fatal("expected a non-empty machine identifier")
	}
	if first != second {
		t.Errorf("expected stable identifier, got %q then %q", first, second)
	}
}

func TestParseIORegUUID(t *testing.T) {
	out := `+-o MacBookPro  <class IOPlatformExpertDevice>
    {
      "IOPlatformUUID" = "0A1B2C3D-4E5F-6789-ABCD-EF0123456789"
      "IOPlatformSerialNumber" = "C02XXXXXXXXX"
    }`

	got := parseIORegUUID(out)
	if got != "0A1B2C3D-4E5F-6789-ABCD-EF0123456789" {
		t.Errorf("unexpected UUID: %q", got)
	}
}

func TestParseIORegUUIDMissing(t *testing.T) {
	if got := parseIORegUUID("no uuid here"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestParseRegQueryGUID(t *testing.T) {
	out := "\r\nHKEY_LOCAL_MACHINE\\SOFTWARE\\Microsoft\\Cryptography\r\n" +
		"    MachineGuid    REG_SZ    12345678-90ab-cdef-1234-567890abcdef\r\n"

	got := parseRegQueryGUID(out)
	if got != "12345678-90ab-cdef-1234-567890abcdef" {
		t.Errorf("unexpected GUID: %q", got)
	}
}

func TestCurrentInfo(t *testing.T) {
	info := CurrentInfo()

	if info.MachineGUID == "" {
		t.Error("expected machine GUID to be set")
	}
	if info.Platform == "" || info.Architecture == "" {
		t.Errorf("expected platform details, got %+v", info)
	}

	rendered := info.String()
	if !strings.Contains(rendered, info.MachineGUID) {
		t.Error("expected rendered info to contain the machine GUID")
	}
}
