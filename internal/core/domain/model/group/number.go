package group

import (
	"fmt"
	"strings"
	"time"
)

// FormatNumber builds the human-readable group number,
// e.g. GRP-20250314-MSK-0001. The sequence restarts per hub per calendar
// day (UTC).
func FormatNumber(hubCode string, day time.Time, seq int) string {
	return fmt.Sprintf("GRP-%s-%s-%04d",
		day.UTC().Format("20060102"), strings.ToUpper(hubCode), seq)
}
