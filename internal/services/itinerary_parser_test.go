package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItinerary_NoDayHeader(t *testing.T) {
	for _, narrative := range []string{
		"",
		"08:00-09:00 เช็คอินที่โรงแรม",
		"แผนการเดินทาง\n09:00–10:00 เที่ยววัด\n20:00 พักผ่อน",
	} {
		acts := ParseItinerary(narrative)
		assert.NotNil(t, acts)
		assert.Empty(t, acts, narrative)
	}
}

func TestParseItinerary_InlineRange(t *testing.T) {
	acts := ParseItinerary("วันที่ 1\n09:00-10:30 เที่ยวชมวัดพระแก้ว  \n10:45 – 12:00 เดินเล่นที่ท่าเตียน")

	require.Len(t, acts, 2)
	assert.Equal(t, Activity{Day: 1, StartTime: "09:00", EndTime: "10:30", Description: "เที่ยวชมวัดพระแก้ว"}, acts[0])
	assert.Equal(t, Activity{Day: 1, StartTime: "10:45", EndTime: "12:00", Description: "เดินเล่นที่ท่าเตียน"}, acts[1])
}

func TestParseItinerary_RangeOnlyTakesNextLine(t *testing.T) {
	acts := ParseItinerary("วันที่ 1\n08:00-09:00\nเช็คอินที่โรงแรม\n09:30-10:00 เที่ยววัด")

	require.Len(t, acts, 2)
	assert.Equal(t, Activity{Day: 1, StartTime: "08:00", EndTime: "09:00", Description: "เช็คอินที่โรงแรม"}, acts[0])
	assert.Equal(t, "เที่ยววัด", acts[1].Description)
}

func TestParseItinerary_RangeOnlyAtEnd(t *testing.T) {
	acts := ParseItinerary("วันที่ 2\n18:00-20:00")

	require.Len(t, acts, 1)
	assert.Equal(t, Activity{Day: 2, StartTime: "18:00", EndTime: "20:00", Description: ""}, acts[0])
}

func TestParseItinerary_OpenEndedClampsHour(t *testing.T) {
	acts := ParseItinerary("วันที่ 1\n23:30 พักผ่อน\n20:00 เป็นต้นไป พักผ่อนที่โรงแรม")

	require.Len(t, acts, 2)
	assert.Equal(t, Activity{Day: 1, StartTime: "23:30", EndTime: "23:30", Description: "พักผ่อน"}, acts[0])
	assert.Equal(t, Activity{Day: 1, StartTime: "20:00", EndTime: "21:00", Description: "เป็นต้นไป พักผ่อนที่โรงแรม"}, acts[1])
}

func TestParseItinerary_DayHeaders(t *testing.T) {
	narrative := `## วันที่ 1
09:00-10:00 เที่ยววัด
**วันที่ 2**
- วันที่ 3: ทะเล
10:00-11:00 ดำน้ำ
วันที่ 1
12:00-13:00 กินข้าว`

	acts := ParseItinerary(narrative)
	require.Len(t, acts, 3)
	assert.Equal(t, 1, acts[0].Day)
	assert.Equal(t, 3, acts[1].Day)
	assert.Equal(t, 1, acts[2].Day, "repeated day headers start a new group for that day")
}

func TestParseItinerary_DecoratedDayHeaders(t *testing.T) {
	acts := ParseItinerary("📅 วันที่ 1\n08:00-09:00 เช็คอินที่โรงแรม\n🗓️ วันที่ 2\n09:00-10:00 เที่ยววัด")

	require.Len(t, acts, 2)
	assert.Equal(t, Activity{Day: 1, StartTime: "08:00", EndTime: "09:00", Description: "เช็คอินที่โรงแรม"}, acts[0])
	assert.Equal(t, Activity{Day: 2, StartTime: "09:00", EndTime: "10:00", Description: "เที่ยววัด"}, acts[1])
}

func TestParseItinerary_MixedLanguageDayHeader(t *testing.T) {
	acts := ParseItinerary("**วันที่ 1: เมืองเก่า**\n08:00 – 09:00 เช็คอิน\n**Day 2 / วันที่ 2**\n09:00-10:00 เที่ยววัด")

	require.Len(t, acts, 2)
	assert.Equal(t, 1, acts[0].Day)
	assert.Equal(t, "เช็คอิน", acts[0].Description)
	assert.Equal(t, 2, acts[1].Day, "a header with an English prefix still starts day 2")
	assert.Equal(t, "เที่ยววัด", acts[1].Description)
}

func TestParseItinerary_ActivityMentioningDayIsNotHeader(t *testing.T) {
	acts := ParseItinerary("วันที่ 1\n11:30–13:00 อาหารกลางวันที่ร้านริมน้ำ\n14:00 วันที่ 5 ของเทศกาล")

	require.Len(t, acts, 2)
	assert.Equal(t, 1, acts[0].Day)
	assert.Equal(t, "อาหารกลางวันที่ร้านริมน้ำ", acts[0].Description)
	assert.Equal(t, Activity{Day: 1, StartTime: "14:00", EndTime: "15:00", Description: "วันที่ 5 ของเทศกาล"}, acts[1])
}

func TestParseItinerary_DiscardsUnrecognisedLines(t *testing.T) {
	acts := ParseItinerary("วันที่ 1\nเช้านี้อากาศดี\n\n   \n09:00-10:00 เที่ยววัด\nหมายเหตุ: พกร่ม")

	require.Len(t, acts, 1)
	assert.Equal(t, "เที่ยววัด", acts[0].Description)
}

func TestParseItinerary_Deterministic(t *testing.T) {
	assert.Equal(t, ParseItinerary(sampleNarrative), ParseItinerary(sampleNarrative))
	assert.Len(t, ParseItinerary(sampleNarrative), 8)
}
