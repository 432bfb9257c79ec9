package services

import (
	"regexp"
	"strconv"
	"strings"

	"tripspark/pkg/utils"
)

// Activity is one timed line of a model-written itinerary.
type Activity struct {
	Day         int
	StartTime   string
	EndTime     string
	Description string
}

var (
	// "วันที่ 1", "### วันที่ 2", "📅 วันที่ 3", "**Day 4 / วันที่ 4**"
	dayHeaderPattern = regexp.MustCompile(`วันที่\s*(\d+)`)
	// activity lines never count as headers, even when the text says "วันที่"
	clockPrefix = regexp.MustCompile(`^\d{2}:\d{2}`)
	// "08:00 - 09:00 เช็คอินที่ ..."
	inlineRangePattern = regexp.MustCompile(`^(\d{2}:\d{2})\s*[-–]\s*(\d{2}:\d{2})\s+(.+)$`)
	// "08:00 - 09:00" with the description on the following line
	rangeOnlyPattern = regexp.MustCompile(`^(\d{2}:\d{2})\s*[-–]\s*(\d{2}:\d{2})$`)
	// "20:00 เป็นต้นไป พักผ่อนที่ ..."
	openEndedPattern = regexp.MustCompile(`^(\d{2}:\d{2})\s+(.+)$`)
)

const noDay = 0

func narrativeLines(narrative string) []string {
	raw := strings.Split(narrative, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func dayHeader(line string) []string {
	if clockPrefix.MatchString(line) {
		return nil
	}
	return dayHeaderPattern.FindStringSubmatch(line)
}

// ParseItinerary turns a day-by-day narrative into activities in line order.
// Lines before the first day header and lines with no recognised time shape are dropped.
func ParseItinerary(narrative string) []Activity {
	lines := narrativeLines(narrative)
	activities := []Activity{}
	currentDay := noDay

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := dayHeader(line); m != nil {
			if day, err := strconv.Atoi(m[1]); err == nil {
				currentDay = day
			}
			continue
		}

		if currentDay == noDay {
			continue
		}

		if m := inlineRangePattern.FindStringSubmatch(line); m != nil {
			activities = append(activities, Activity{
				Day:         currentDay,
				StartTime:   m[1],
				EndTime:     m[2],
				Description: strings.TrimSpace(m[3]),
			})
			continue
		}

		if m := rangeOnlyPattern.FindStringSubmatch(line); m != nil {
			description := ""
			if i+1 < len(lines) {
				description = lines[i+1]
				i++
			}
			activities = append(activities, Activity{
				Day:         currentDay,
				StartTime:   m[1],
				EndTime:     m[2],
				Description: description,
			})
			continue
		}

		if m := openEndedPattern.FindStringSubmatch(line); m != nil {
			end, err := utils.AddHourClamped(m[1])
			if err != nil {
				continue
			}
			activities = append(activities, Activity{
				Day:         currentDay,
				StartTime:   m[1],
				EndTime:     end,
				Description: strings.TrimSpace(m[2]),
			})
		}
	}

	return activities
}
