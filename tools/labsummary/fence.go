package labsummary

import "strings"

// stripCodeFences removes a ```json ... ``` or ``` ... ``` fence around the model answer
func stripCodeFences(text string) string {
	ret := strings.TrimSpace(text)
	if !strings.HasPrefix(ret, "```") {
		return ret
	}
	ret = strings.TrimLeftFunc(ret[3:], isSpace)
	if len(ret) >= 4 && strings.EqualFold(ret[:4], "json") {
		ret = strings.TrimLeftFunc(ret[4:], isSpace)
	}
	if strings.HasSuffix(ret, "```") {
		ret = strings.TrimRightFunc(ret[:len(ret)-3], isSpace)
	}
	return ret
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
