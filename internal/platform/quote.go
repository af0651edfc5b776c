package platform

import "strings"

// PowerShell treats the typographic single quotes like the ASCII one, so all of them are doubled.
var singleQuotes = strings.NewReplacer(
	"'", "''",
	"‘", "‘‘",
	"’", "’’",
	"‚", "‚‚",
	"‛", "‛‛",
)

// QuotePowerShell renders s as a single-quoted PowerShell string literal.
// Every single quote inside s is doubled, so the literal always parses back to s.
func QuotePowerShell(s string) string {
	return "'" + singleQuotes.Replace(s) + "'"
}
