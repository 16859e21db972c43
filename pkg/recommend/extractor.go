package recommend

import (
	"regexp"
	"strings"
)

// DefaultTopK is the maximum number of tool names kept from a response.
const DefaultTopK = 5

// rankedLinePattern matches a ranked line: optional markdown heading or emphasis
// before an integer, a "." or ")" separator, any run of emphasis markers, then the
// name segment. Lines such as "### 3. Notion: team workspace" and
// "2. ***Zen*** - ok" both match.
var rankedLinePattern = regexp.MustCompile(`^[#*_\s]*\d+[.)]\s*[*_]*\s*([A-Za-z0-9 &+_:\-–—()./]+)`)

// nameSeparators end the name segment.
const nameSeparators = "-–—:"

// ExtractToolNames returns at most DefaultTopK tool names found in text.
func ExtractToolNames(text string) []string {
	return ExtractTopK(text, DefaultTopK)
}

// ExtractTopK scans text line by line and returns the names of ranked lines in
// input order, without deduplication. k <= 0 means no limit. The result is never
// nil; an empty slice means no structured names were found.
func ExtractTopK(text string, k int) []string {
	names := make([]string, 0, DefaultTopK)
	for _, line := range strings.Split(text, "\n") {
		if k > 0 && len(names) >= k {
			break
		}
		name, ok := extractName(line)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

func extractName(line string) (string, bool) {
	match := rankedLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if len(match) < 2 {
		return "", false
	}
	segment := match[1]
	if idx := strings.IndexAny(segment, nameSeparators); idx >= 0 {
		segment = segment[:idx]
	}
	name := strings.Trim(strings.TrimSpace(segment), "*_ ")
	if name == "" {
		return "", false
	}
	return name, true
}
