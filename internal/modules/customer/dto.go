package customer

type CustomerRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required" validate:"phone"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}
