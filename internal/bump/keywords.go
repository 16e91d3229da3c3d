package bump

import "strings"

// Keywords is a list of substrings that trigger a bump when a commit message
// contains one of them.
//
// A nil Keywords list is unset. A non-nil list is configured, even if it only
// contains empty entries. Empty entries never match.
type Keywords []string

// ParseKeywords splits a comma separated keyword list.
// An empty string results in an unset (nil) list. Entries are trimmed and
// lower-cased, empty entries are kept.
func ParseKeywords(commaSeparated string) Keywords {
	if commaSeparated == "" {
		return nil
	}

	spl := strings.Split(commaSeparated, ",")
	result := make(Keywords, 0, len(spl))

	for _, w := range spl {
		result = append(result, strings.ToLower(strings.TrimSpace(w)))
	}

	return result
}

// IsConfigured returns true if the list is not nil.
func (k Keywords) IsConfigured() bool {
	return k != nil
}

// Match returns the first keyword in the list that is contained in msg.
func (k Keywords) Match(msg string) (keyword string, found bool) {
	for _, w := range k {
		if w == "" {
			continue
		}

		w = strings.ToLower(w)
		if strings.Contains(msg, w) {
			return w, true
		}
	}

	return "", false
}

// firstMatch returns the first keyword that is contained in one of the
// messages. Messages are evaluated in order, for every message all keywords
// are evaluated in order.
func (k Keywords) firstMatch(messages []string) (keyword string, found bool) {
	for _, msg := range messages {
		if w, found := k.Match(msg); found {
			return w, true
		}
	}

	return "", false
}

func (k Keywords) String() string {
	if k == nil {
		return "<unset>"
	}

	return strings.Join(k, ",")
}
