package clientdto

// ClientCreateInput creates a client, optionally linked to the business it came from.
type ClientCreateInput struct {
	Name         string   `json:"name" form:"name" validate:"required,no_xss"`
	MobileNumber string   `json:"mobileNumber" form:"mobileNumber" validate:"required,mobile"`
	Email        string   `json:"email" form:"email" validate:"omitempty,email"`
	Address      string   `json:"address" form:"address" validate:"no_xss"`
	Business     string   `json:"business" form:"business" validate:"omitempty,objectid,exists=businesses"`
	Services     []string `json:"services" form:"services" validate:"dive,no_xss"`
	DealAmount   float64  `json:"dealAmount" form:"dealAmount" validate:"gte=0"`
	Remarks      string   `json:"remarks" form:"remarks" validate:"no_xss"`
}

// ClientUpdateInput changes a client; empty fields are left untouched.
type ClientUpdateInput struct {
	Name         string   `json:"name" form:"name" validate:"no_xss"`
	MobileNumber string   `json:"mobileNumber" form:"mobileNumber" validate:"omitempty,mobile"`
	Email        string   `json:"email" form:"email" validate:"omitempty,email"`
	Address      string   `json:"address" form:"address" validate:"no_xss"`
	Services     []string `json:"services" form:"services" validate:"dive,no_xss"`
	DealAmount   *float64 `json:"dealAmount" form:"dealAmount" validate:"omitempty,gte=0"`
	Remarks      string   `json:"remarks" form:"remarks" validate:"no_xss"`
}
