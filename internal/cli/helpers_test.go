package cli

import "strings"

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}
