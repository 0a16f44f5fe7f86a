package exporter

import "fmt"

// formatFloat formats a float64 for report output with exactly 2 decimal
// places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats a ratio already expressed in percent points.
func formatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
