package usecases

import "strings"

// moderationDenylist holds terms that reject user-authored content outright.
var moderationDenylist = []string{"spam", "advertisement", "scam"}

// Moderate runs the pre-write content gate: a case-insensitive substring
// check against the denylist. It never strips content silently; a rejection
// always carries an explicit reason.
func Moderate(content string) (bool, string) {
	lower := strings.ToLower(content)
	for _, word := range moderationDenylist {
		if strings.Contains(lower, word) {
			return false, "Content contains inappropriate material"
		}
	}
	return true, "Content approved"
}
