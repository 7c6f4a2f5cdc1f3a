package request

type AvailabilityQuery struct {
	ApartmentID string `form:"apartment_id" binding:"required,uuid"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
}
