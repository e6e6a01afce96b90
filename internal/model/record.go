package model

// FastingRecord is the log entry for one calendar day. Date is the unique key
// in ISO form (YYYY-MM-DD).
type FastingRecord struct {
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
	StartTime string  `json:"startTime,omitempty"`
	EndTime   string  `json:"endTime,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	Completed bool    `json:"completed"`
}

// RecordPatch holds the fields to merge onto an existing record; nil fields
// are left untouched.
type RecordPatch struct {
	Hours     *float64
	StartTime *string
	EndTime   *string
	Notes     *string
	Completed *bool
}

func (p RecordPatch) Apply(r FastingRecord) FastingRecord {
	if p.Hours != nil {
		r.Hours = *p.Hours
	}
	if p.StartTime != nil {
		r.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		r.EndTime = *p.EndTime
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.Completed != nil {
		r.Completed = *p.Completed
	}
	return r
}
