package websiteleaddto

// WebsiteLeadCreateInput is the public enquiry form.
type WebsiteLeadCreateInput struct {
	Name         string `json:"name" form:"name" validate:"required,max=100,no_xss"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" validate:"required,mobile"`
	Email        string `json:"email" form:"email" validate:"omitempty,email"`
	Service      string `json:"service" form:"service" validate:"max=100,no_xss"`
	Message      string `json:"message" form:"message" validate:"max=2000,no_xss"`
	Page         string `json:"page" form:"page" validate:"max=300,no_xss"`
}

// WebsiteLeadUpdateInput moves a lead through follow-up.
type WebsiteLeadUpdateInput struct {
	Status string `json:"status" form:"status" validate:"omitempty,oneof=new contacted converted closed"`
	Notes  string `json:"notes" form:"notes" validate:"no_xss"`
}
