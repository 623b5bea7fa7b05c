// Package device derives a stable machine identifier used as the
// device fingerprint bound at enrollment. The identifier is trusted as
// presented; it is not a cryptographic trust root.
package device

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// MachineGUID returns the platform machine identifier. Each platform
// has a primary source and falls back down a chain ending at the MAC
// address of the first hardware interface.
func MachineGUID() string {
	switch runtime.GOOS {
	case "linux":
		if id := linuxMachineID(); id != "" {
			return id
		}
	case "darwin":
		if id := darwinHardwareUUID(); id != "" {
			return id
		}
	case "windows":
		if id := windowsMachineGUID(); id != "" {
			return id
		}
	}
	return macAddressFallback()
}

// linuxMachineID reads /etc/machine-id with /var/lib/dbus/machine-id as
// fallback.
func linuxMachineID() string {
	for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	return ""
}

// darwinHardwareUUID queries IOKit for the platform UUID.
func darwinHardwareUUID() string {
	out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return ""
	}
	return parseIORegUUID(string(out))
}

func parseIORegUUID(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "IOPlatformUUID") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		return strings.Trim(strings.TrimSpace(parts[1]), `"`)
	}
	return ""
}

// windowsMachineGUID reads the MachineGuid registry value.
func windowsMachineGUID() string {
	out, err := exec.Command("reg", "query",
		`HKLM\SOFTWARE\Microsoft\Cryptography`, "/v", "MachineGuid").Output()
	if err != nil {
		return ""
	}
	return parseRegQueryGUID(string(out))
}

func parseRegQueryGUID(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "MachineGuid") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			return fields[len(fields)-1]
		}
	}
	return ""
}

// macAddressFallback returns the MAC address of the first non-loopback
// hardware interface, or "unknown" if none is available.
func macAddressFallback() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "unknown"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		return iface.HardwareAddr.String()
	}
	return "unknown"
}

// Info describes the machine for diagnostic output.
type Info struct {
	MachineGUID  string `json:"machine_guid"`
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
	Hostname     string `json:"hostname"`
}

// CurrentInfo collects the fingerprint plus basic platform details.
func CurrentInfo() Info {
	hostname, _ := os.Hostname()
	return Info{
		MachineGUID:  MachineGUID(),
		Platform:     runtime.GOOS,
		Architecture: runtime.GOARCH,
		Hostname:     hostname,
	}
}

// String renders the info for terminal output.
func (i Info) String() string {
	return fmt.Sprintf("machine_guid: %s\nplatform: %s\narchitecture: %s\nhostname: %s",
		i.MachineGUID, i.Platform, i.Architecture, i.Hostname)
}
