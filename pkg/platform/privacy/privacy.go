// Package privacy masks personally identifiable values before they reach
// logs or metrics.
package privacy

import (
	"fmt"
	"log/slog"
	"net/netip"

	"registration/pkg/domain"
)

// Log attribute keys whose values are always redacted by RedactAttr.
const (
	KeyNationalID = "national_id"
	KeyPhone      = "phone"
	KeyClientIP   = "client_ip"
)

// AnonymizeIP truncates an address to its network: IPv4 to /24
// ("192.168.1.47" -> "192.168.1.0"), IPv6 to /48
// ("2001:db8:85a3::8a2e:370:7334" -> "2001:0db8:85a3::").
//
// Returns "unknown" for empty input and "invalid" for unparseable input.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap()
	if addr.Is4() {
		b := addr.As4()
		return fmt.Sprintf("%d.%d.%d.0", b[0], b[1], b[2])
	}
	b := addr.As16()
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::", b[0], b[1], b[2], b[3], b[4], b[5])
}

// RedactAttr is a slog ReplaceAttr hook masking national IDs, phone
// numbers and client IPs by attribute key.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	switch a.Key {
	case KeyNationalID:
		return slog.String(a.Key, domain.RedactNationalID(a.Value.String()))
	case KeyPhone:
		return slog.String(a.Key, domain.MaskPhone(a.Value.String()))
	case KeyClientIP:
		return slog.String(a.Key, AnonymizeIP(a.Value.String()))
	}
	return a
}
