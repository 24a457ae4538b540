package dto

type CreateFunnelStep struct {
	Name string `json:"name" validate:"max=120" example:"Add to Cart"`
	Page string `json:"page" validate:"required" example:"/cart"`
}

type CreateFunnelRequest struct {
	Name  string             `json:"name" validate:"required,max=120" example:"Checkout"`
	Steps []CreateFunnelStep `json:"steps" validate:"required,min=1,max=20,dive"`
}

type FunnelStepResponse struct {
	Name           string  `json:"name" example:"Add to Cart"`
	Page           string  `json:"page" example:"/cart"`
	Users          int     `json:"users" example:"4500"`
	ConversionRate float64 `json:"conversionRate" example:"45"`
	DropoffRate    float64 `json:"dropoffRate" example:"40"`
}

type FunnelResponse struct {
	ID        string               `json:"id" example:"fnl_abc123"`
	Name      string               `json:"name" example:"Checkout"`
	Steps     []FunnelStepResponse `json:"steps"`
	CreatedAt string               `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}
