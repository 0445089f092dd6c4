package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// XLMDecimals is the number of decimal places of the native asset.
	// 1 XLM = 10^7 stroops.
	XLMDecimals = 7
)

// StroopsToXLM converts stroops to an XLM string without float precision loss
func StroopsToXLM(stroops int64) string {
	if stroops < 0 {
		return "-" + formatWithDecimals(uint64(-stroops), XLMDecimals)
	}
	return formatWithDecimals(uint64(stroops), XLMDecimals)
}

// XLMToStroops converts an XLM string to stroops without float precision loss
func XLMToStroops(xlm string) (int64, error) {
	n, err := parseWithDecimals(xlm, XLMDecimals)
	if err != nil {
		return 0, err
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("amount out of range")
	}
	return int64(n), nil
}

// ValidAmount reports whether s is a positive decimal amount with at most
// seven fractional digits.
func ValidAmount(s string) bool {
	n, err := parseWithDecimals(s, XLMDecimals)
	return err == nil && n > 0
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 7) = "2.4981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("2.4981836", 7) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - multiply by 10^decimals
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]
	if frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}

	// More fractional digits than the asset supports is a caller bug,
	// not something to silently truncate.
	if len(frac) > decimals {
		return 0, fmt.Errorf("too many decimal places (max %d)", decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	// Combine and parse
	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}
