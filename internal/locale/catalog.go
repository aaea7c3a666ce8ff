package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Thai translations keyed by the English display string. English output
// uses the key itself.
var thai = map[string]string{
	// record labels
	"Income":        "รายรับ",
	"Expense":       "รายจ่าย",
	"Food":          "อาหาร",
	"Travel":        "เดินทาง",
	"Utilities":     "ของใช้",
	"Others":        "อื่นๆ",
	"Fixed Expense": "ค่าใช้จ่ายประจำ",

	// columns
	"Date":          "วันที่",
	"Type":          "ประเภท",
	"Category":      "หมวดหมู่",
	"Amount":        "จำนวนเงิน",
	"Note":          "หมายเหตุ",
	"Name":          "ชื่อ",
	"Paid":          "จ่ายแล้ว",
	"Date Paid":     "วันที่จ่าย",
	"Saved":         "ออมแล้ว",
	"Target":        "เป้าหมาย",
	"Target Date":   "วันที่สิ้นสุด",
	"Frequency":     "ความถี่",
	"Required/Freq": "ต้องออมต่อความถี่",
	"Emoji":         "อีโมจิ",
	"Month":         "เดือน",
	"Week":          "สัปดาห์",
	"Day":           "วัน",
	"Status":        "สถานะ",
	"Progress":      "ความคืบหน้า",

	// metrics
	"Balance":                      "ยอดคงเหลือ",
	"Suggested Daily Spend":        "ใช้ได้ต่อวัน",
	"Days Until Payday":            "วันก่อนเงินเดือนออก",
	"Total Fixed Expenses":         "ค่าใช้จ่ายประจำรวม",
	"Balance After Fixed Expenses": "คงเหลือหลังหักค่าใช้จ่าย Fix",
	"Remaining for Next Month":     "ยอดเงินคงเหลือสำหรับเดือนหน้า",
	"Smart Suggestion":             "คำแนะนำอัจฉริยะ",

	// advice
	"⚠️ You're overspending! Reduce expenses.":          "⚠️ คุณใช้เงินเกินรายรับ! ควรลดค่าใช้จ่าย.",
	"💡 Expenses >70%% of income. Recheck your goals.": "💡 รายจ่ายมากกว่า 70%% ของรายรับ ลองทบทวนเป้าหมาย.",
	"👍 Great money management!":                       "👍 คุณบริหารเงินได้ดี!",

	// goal status
	"Goal Reached!":       "ถึงเป้าแล้ว!",
	"Invalid Target Date": "วันที่เป้าหมายไม่ถูกต้อง",
	"Overdue":             "เกินกำหนด",
	"Remaining %d days":   "เหลือ %d วัน",

	// frequencies and periods
	"Daily":         "รายวัน",
	"Weekly":        "รายสัปดาห์",
	"Monthly":       "รายเดือน",
	"Yearly":        "รายปี",
	"Current Month": "เดือนปัจจุบัน",
	"Last 3 Months": "3 เดือนล่าสุด",
	"Current Year":  "ปีปัจจุบัน",
	"All Time":      "ทั้งหมด",
	"day":           "วัน",
	"week":          "สัปดาห์",
	"month":         "เดือน",

	// sections and messages
	"Overview":                                  "ภาพรวม",
	"Entries":                                   "รายการ",
	"Fixed":                                     "ค่าใช้จ่าย Fix",
	"Goals":                                     "เป้าหมาย",
	"Plan":                                      "วางแผน",
	"Fixed Expenses":                            "ค่าใช้จ่ายประจำ",
	"Saving Goals":                              "เป้าหมายการออม",
	"Plan for Next Month":                       "วางแผนสำหรับเดือนหน้า",
	"Expected Monthly Salary":                   "จำนวนเงินเดือนที่คาดว่าจะได้รับ",
	"Expected Salary":                           "เงินเดือนที่คาดไว้",
	"Planned Expenses":                          "ค่าใช้จ่ายที่วางแผนไว้",
	"Expense Distribution by Category":          "สัดส่วนรายจ่ายตามหมวดหมู่",
	"Spending Over Time":                        "รายจ่ายตามช่วงเวลา",
	"Entries for %s":                            "รายการสำหรับ %s",
	"No data for the selected period.":          "ไม่มีข้อมูลสำหรับช่วงเวลาที่เลือก",
	"No fixed expenses yet. Add some!":          "ยังไม่มีค่าใช้จ่าย Fix เพิ่มรายการได้เลย!",
	"No saving goals yet. Add your first goal!": "ยังไม่มีเป้าหมายการออม เพิ่มเป้าหมายแรกของคุณได้เลย!",
	"No expenses to manage for this month.":     "ไม่มีค่าใช้จ่ายที่ต้องจัดการสำหรับเดือนนี้",
	"It's time to manage expenses for %s!":      "ถึงเวลาจัดการค่าใช้จ่ายเดือน %s!",

	"Payment management opens on day %d of the current month.": "การจัดการการจ่ายเงินจะเปิดตั้งแต่วันที่ %d ของเดือนปัจจุบัน",

	"Entry saved!":                         "บันทึกเรียบร้อยแล้ว!",
	"Goal added successfully!":             "เพิ่มเป้าหมายสำเร็จแล้ว!",
	"Fixed expense added successfully!":    "เพิ่มค่าใช้จ่าย Fix เรียบร้อยแล้ว!",
	"Planned expenses saved successfully!": "บันทึกแผนค่าใช้จ่ายสำเร็จแล้ว!",
	"Planned income saved successfully!":   "บันทึกแผนรายได้สำเร็จแล้ว!",
	"Saved %s to %s":                       "ออม %s เข้าเป้าหมาย %s แล้ว",

	// dashboard
	"Loading budget...":   "กำลังโหลดข้อมูล...",
	"Add Entry":           "เพิ่มรายการ",
	"Add Fixed Expense":   "เพิ่มค่าใช้จ่าย Fix",
	"Add Saving Goal":     "เพิ่มเป้าหมายการออม",
	"Save to Goal":        "ออมเข้าเป้าหมาย",
	"Add Planned Expense": "เพิ่มค่าใช้จ่ายที่วางแผน",
	"Custom category":     "หมวดหมู่อื่น",
	"Delete %s?":          "ลบ %s?",
	"Deleted %s":          "ลบ %s แล้ว",
	"Paid %d items":       "จ่ายแล้ว %d รายการ",
	"Nothing selected.":   "ยังไม่ได้เลือกรายการ",
	"No entries.":         "ไม่มีรายการ",
	"Net":                 "คงเหลือสุทธิ",
	"Unpaid":              "ยังไม่จ่าย",
	"Remaining":           "คงเหลือ",
	"Period":              "ช่วงเวลา",
	"Settings saved.":     "บันทึกการตั้งค่าแล้ว",

	"Fixed expense rows are edited on the Fixed tab.": "แก้ไขค่าใช้จ่าย Fix ได้ที่แท็บค่าใช้จ่าย Fix",
}

var months = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

func init() {
	for en, th := range thai {
		_ = message.SetString(language.Thai, en, th)
		_ = message.SetString(language.English, en, en)
	}
}
