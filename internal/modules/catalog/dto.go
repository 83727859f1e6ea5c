package catalog

type CityRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" validate:"omitempty,loccode"`
}

type LocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" validate:"omitempty,loccode"`
	CityID  string `json:"city_id" binding:"required"`
	Status  string `json:"status"`
	Address string `json:"address"`
}
