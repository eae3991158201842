package labsummary

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/words"
)

// DefaultLeakRunLength is the number of consecutive report words reported as a verbatim leak
const DefaultLeakRunLength = 6

// VerbatimRuns returns the runs of at least n consecutive raw report words found as is in summary.
// Words are compared case insensitively, purely numeric tokens are ignored.
func VerbatimRuns(raw string, summary string, n int) []string {
	if n <= 0 {
		n = DefaultLeakRunLength
	}
	src := tokenize(raw)
	dst := tokenize(summary)
	if len(src) < n || len(dst) < n {
		return nil
	}
	grams := make(map[string]struct{}, len(dst)-n+1)
	for i := 0; i+n <= len(dst); i++ {
		grams[strings.Join(dst[i:i+n], " ")] = struct{}{}
	}
	var (
		ret  []string
		seen = make(map[string]struct{})
	)
	for i := 0; i+n <= len(src); {
		if _, ok := grams[strings.Join(src[i:i+n], " ")]; !ok {
			i++
			continue
		}
		end := i + n
		for end < len(src) {
			if _, ok := grams[strings.Join(src[end-n+1:end+1], " ")]; !ok {
				break
			}
			end++
		}
		run := strings.Join(src[i:end], " ")
		if _, ok := seen[run]; !ok {
			seen[run] = struct{}{}
			ret = append(ret, run)
		}
		i = end
	}
	return ret
}

func tokenize(text string) []string {
	var ret []string
	sc := words.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		token := sc.Text()
		if isWord(token) {
			ret = append(ret, strings.ToLower(token))
		}
	}
	return ret
}

// isWord reports whether token has a letter, numbers and punctuation are skipped
func isWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
