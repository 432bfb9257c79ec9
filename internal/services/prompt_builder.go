package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripspark/internal/models/response_models"
)

// BuildItineraryPrompt asks the model for a Thai day-by-day narrative whose lines the
// itinerary parser can read back: "วันที่ N" headers and explicit "HH:MM–HH:MM" ranges.
func BuildItineraryPrompt(route *response_models.RouteData, days int, city string) (string, error) {
	paths, err := json.MarshalIndent(route.Paths, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal paths: %w", err)
	}
	plan, err := json.MarshalIndent(route.TripPlan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal trip plan: %w", err)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "คุณคือผู้ช่วยวางแผนทริปท่องเที่ยวมืออาชีพ โปรดจัดแผนการเดินทางใน%s เป็นเวลา %d วัน โดยเริ่มจาก \"%s\"\n\n", city, days, route.StartName)
	prompt.WriteString("ด้านล่างคือข้อมูลเส้นทางระหว่างสถานที่ (paths) และแผนรายวัน (trip_plan):\n")
	prompt.Write(paths)
	prompt.WriteString("\n\n")
	prompt.Write(plan)
	prompt.WriteString("\n\n")
	fmt.Fprintf(&prompt, "กรุณาจัดแผนทริปให้ครบทั้ง %d วัน โดยมีรายละเอียดดังนี้:\n\n", days)
	prompt.WriteString(`- แบ่งแผนตามวัน เช่น "วันที่ 1", "วันที่ 2" พร้อมระบุช่วงเวลา (เช่น 09:00–10:30) ให้เหมาะสมกับจำนวนกิจกรรมในแต่ละวัน
- ใช้ช่วงเวลาแต่ละกิจกรรมประมาณ 1.5–3 ชั่วโมง และจัดตามลำดับใน paths และ trip_plan
- เริ่มกิจกรรมแต่ละวันเวลาประมาณ 08:00
- ห้ามใช้คำว่า "เป็นต้นไป" ให้ระบุช่วงเวลาอย่างชัดเจนเท่านั้น เช่น 18:00–20:00
- วันแรกให้เริ่มต้นด้วยกิจกรรม "เช็คอินที่ <ชื่อที่พัก>" เวลา 08:00–09:00
- สิ้นสุดทุกวันด้วย "พักผ่อนที่ <ชื่อที่พัก>" ช่วงเย็น
- วันสุดท้ายให้ปิดท้ายด้วย "เช็คเอาท์และเดินทางกลับ" หลังจบกิจกรรมสุดท้าย และต้องมีเวลาเริ่มต้น - จบเสมอ เช่น 19:00-20:00
- ห้ามใช้รหัสสถานที่ (เช่น P123, R99, A1) ในคำอธิบาย
- เขียนคำอธิบายกิจกรรมตามประเภท:
  - P = สถานที่ท่องเที่ยว เช่น "เที่ยวชม...", "เดินเล่นที่...", "ถ่ายรูปที่..."
  - R = ร้านอาหาร เช่น "รับประทานอาหารกลางวันที่...", "แวะชิมของว่างที่..."
  - A = ที่พัก เช่น "เช็คอินที่...", "พักผ่อนที่...", "เช็คเอาท์และเดินทางกลับ"
- หากมีสถานที่ซ้ำในหลายวัน ให้ปรับคำอธิบายกิจกรรมให้หลากหลาย ไม่ซ้ำซาก
- ใช้ภาษาสุภาพ กระชับ อ่านง่าย และจัดรูปแบบให้อ่านสบาย มีการเว้นบรรทัดอย่างเหมาะสม
`)
	return prompt.String(), nil
}
