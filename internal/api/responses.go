package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DatesResponse lists calendar dates as YYYY-MM-DD strings.
type DatesResponse struct {
	Dates []string `json:"dates"`
}

type WeekdaysResponse struct {
	Weekdays []int `json:"weekdays"`
}
