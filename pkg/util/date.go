package util

import (
	"strings"
	"time"
)

// dateTplTokens maps template placeholders to Go layout fragments. Longer tokens come
// first so that YYYY is not consumed as two YY.
var dateTplTokens = []struct{ tpl, layout string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"hh", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// FormatDateTpl formats t using a template with placeholders.
//
// Supported placeholders:
// - YYYY: 4-digit year
// - YY: 2-digit year
// - MM: 2-digit month (01-12)
// - DD: 2-digit day (01-31)
// - hh: 2-digit hour (00-23)
// - mm: 2-digit minute (00-59)
// - ss: 2-digit second (00-59)
//
// Returns an empty string for the zero time.
//
// Example:
//
//	FormatDateTpl(t, "YYYY/MM/DD/hh:mm:ss") // "2023/11/10/00:00:00"
func FormatDateTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTplLayout(tpl))
}

// DateTplLayout converts a placeholder template to a Go time layout.
func DateTplLayout(tpl string) string {
	layout := tpl
	for _, tok := range dateTplTokens {
		layout = strings.ReplaceAll(layout, tok.tpl, tok.layout)
	}
	return layout
}
