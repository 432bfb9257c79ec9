package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the destination phrase and optional trip length pulled out of one utterance.
// Days is nil when the utterance did not state a positive day count.
type Intent struct {
	Keyword string
	Days    *int
}

type intentPattern struct {
	name string
	re   *regexp.Regexp
}

// Tried in order; the full "want to go to <place> <N> days" form wins over the bare destination.
var intentPatterns = []intentPattern{
	{name: "place_and_days", re: regexp.MustCompile(`อยากไป(.*?)(\d+)\s*วัน`)},
	{name: "place_only", re: regexp.MustCompile(`อยากไป\s*(.+)`)},
}

// "3", "3 วัน", "สัก 3 วัน", "3 วันค่ะ", "2วันครับ"
var dayCountReplyPattern = regexp.MustCompile(`^(?:สัก\s*)?(\d+)\s*(?:วัน)?\s*(?:ค่ะ|คะ|ครับ|นะ|จ้ะ|จ้า)?$`)

// ExtractIntent returns nil when no pattern matches or the first matching pattern
// captured an empty place.
func ExtractIntent(utterance string) *Intent {
	for _, p := range intentPatterns {
		m := p.re.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		keyword := strings.TrimSpace(m[1])
		if keyword == "" {
			return nil
		}
		intent := &Intent{Keyword: keyword}
		if len(m) > 2 {
			if days, err := strconv.Atoi(m[2]); err == nil && days > 0 {
				intent.Days = &days
			}
		}
		return intent
	}
	return nil
}

// ParseDayCountReply recognises an answer to the "how many days?" question: a positive
// integer, optionally followed by the day unit and a polite particle.
func ParseDayCountReply(reply string) (int, bool) {
	m := dayCountReplyPattern.FindStringSubmatch(strings.TrimSpace(reply))
	if m == nil {
		return 0, false
	}
	days, err := strconv.Atoi(m[1])
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}
