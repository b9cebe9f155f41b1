package dto

type CreateCenterInput struct {
	Name      string  `json:"name" binding:"required,max=200"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	Phone     string  `json:"phone"`
	Website   string  `json:"website"`
}
