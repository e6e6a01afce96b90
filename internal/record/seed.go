package record

import "fasting/backend/internal/model"

// SeedRecords is the demo history shown to new accounts when demo data is on.
func SeedRecords() []model.FastingRecord {
	return []model.FastingRecord{
		{Date: "2024-12-01", Hours: 16, StartTime: "20:00", EndTime: "12:00", Completed: true, Notes: "Felt great!"},
		{Date: "2024-12-02", Hours: 14, StartTime: "21:00", EndTime: "11:00", Completed: true},
		{Date: "2024-12-03", Hours: 18, StartTime: "19:00", EndTime: "13:00", Completed: true},
		{Date: "2024-12-05", Hours: 12, StartTime: "22:00", EndTime: "10:00", Completed: false, Notes: "Broke fast early"},
		{Date: "2024-12-07", Hours: 16, StartTime: "20:00", EndTime: "12:00", Completed: true},
		{Date: "2024-12-08", Hours: 15, StartTime: "20:30", EndTime: "11:30", Completed: true},
		{Date: "2024-12-10", Hours: 17, StartTime: "19:30", EndTime: "12:30", Completed: true},
		{Date: "2024-12-11", Hours: 16, StartTime: "20:00", EndTime: "12:00", Completed: true},
		{Date: "2024-12-12", Hours: 18, StartTime: "19:00", EndTime: "13:00", Completed: true},
		{Date: "2024-12-13", Hours: 14, StartTime: "21:00", EndTime: "11:00", Completed: false, Notes: "Felt tired, broke fast early"},
		{Date: "2024-12-14", Hours: 16, StartTime: "20:00", EndTime: "12:00", Completed: true},
		{Date: "2024-12-15", Hours: 17, StartTime: "19:30", EndTime: "12:30", Completed: true},
		{Date: "2024-12-16", Hours: 16, StartTime: "20:00", EndTime: "12:00", Completed: true},
	}
}
