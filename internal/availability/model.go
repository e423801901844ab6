package availability

// SetRequest records the availability of one date.
type SetRequest struct {
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	Status    string  `json:"status" binding:"required,oneof=available not_available tentative booked"`
	StartTime *string `json:"start_time,omitempty" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time,omitempty" binding:"omitempty,datetime=15:04"`
}

// BulkRequest records the same availability for every date in
// [StartDate, EndDate].
type BulkRequest struct {
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	Status    string  `json:"status" binding:"required,oneof=available not_available tentative booked"`
	StartTime *string `json:"start_time,omitempty" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time,omitempty" binding:"omitempty,datetime=15:04"`
}

type BulkResponse struct {
	Updated int `json:"updated"`
}

// BlockedWeekdaysRequest replaces a trainer's blocked weekdays. An empty
// list clears them.
type BlockedWeekdaysRequest struct {
	Weekdays []int `json:"weekdays" binding:"required,dive,min=0,max=6"`
}
