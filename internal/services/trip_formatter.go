package services

import (
	"regexp"
	"strings"

	"tripspark/internal/models/response_models"
)

var (
	headingPrefix  = regexp.MustCompile(`^(?:\*\*|#+)\s*วันที่`)
	headingMarkers = regexp.MustCompile(`^(?:\*\*|#+)\s*|\*+$`)
	timeSlotPrefix = regexp.MustCompile(`^(\d{2}:\d{2})\s*[-–]\s*(\d{2}:\d{2})\s*`)
)

// FormatTripPlanText splits a narrative into display blocks for the chat surface.
func FormatTripPlanText(text string) []response_models.DisplayBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]response_models.DisplayBlock, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			blocks = append(blocks, response_models.DisplayBlock{Kind: response_models.BlockBreak})
		case headingPrefix.MatchString(trimmed):
			blocks = append(blocks, response_models.DisplayBlock{
				Kind: response_models.BlockDayHeading,
				Text: strings.TrimSpace(headingMarkers.ReplaceAllString(trimmed, "")),
			})
		case timeSlotPrefix.MatchString(trimmed):
			m := timeSlotPrefix.FindStringSubmatch(trimmed)
			blocks = append(blocks, response_models.DisplayBlock{
				Kind:      response_models.BlockTimeSlot,
				StartTime: m[1],
				EndTime:   m[2],
				Text:      strings.TrimSpace(trimmed[len(m[0]):]),
			})
		default:
			blocks = append(blocks, response_models.DisplayBlock{Kind: response_models.BlockParagraph, Text: trimmed})
		}
	}

	return blocks
}
