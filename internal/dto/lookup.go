package dto

// DaysOrderQuery captures GET /daysorder query parameters.
type DaysOrderQuery struct {
	AgentCode string `form:"code" validate:"required"`
}
