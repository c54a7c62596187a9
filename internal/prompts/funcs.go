package prompts

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// FuncMap returns the template helpers shared by the stage prompts.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"join":      strings.Join,
		"quoteList": QuoteList,
		"coord": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 4, 64)
		},
	}
}

// QuoteList renders values as a comma-separated list of quoted strings.
func QuoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
