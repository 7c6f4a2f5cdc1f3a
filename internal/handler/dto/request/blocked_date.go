package request

type BlockDateRequest struct {
	Day string `json:"day" binding:"required"`
}
