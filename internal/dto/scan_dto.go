package dto

type RecordScanInput struct {
	ItemName          string   `json:"item_name" binding:"required,max=200"`
	PredictedMaterial string   `json:"predicted_material" binding:"required,max=50"`
	Confidence        float64  `json:"confidence" binding:"min=0,max=1"`
	Decision          string   `json:"decision" binding:"required,oneof=Recycle 'Not Recyclable' 'Special Drop-off'"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}
