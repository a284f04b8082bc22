package candidatedto

// CandidateCreateInput creates a candidate; the resume arrives as the "resume" form file.
type CandidateCreateInput struct {
	Name         string `json:"name" form:"name" validate:"required,no_xss"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" validate:"required,mobile"`
	Email        string `json:"email" form:"email" validate:"omitempty,email"`
	Position     string `json:"position" form:"position" validate:"no_xss"`
	Experience   string `json:"experience" form:"experience" validate:"no_xss"`
	City         string `json:"city" form:"city" validate:"omitempty,objectid,exists=cities"`
	Remarks      string `json:"remarks" form:"remarks" validate:"no_xss"`
}

// CandidateUpdateInput changes a candidate; empty fields are left untouched.
type CandidateUpdateInput struct {
	Name         string `json:"name" form:"name" validate:"no_xss"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" validate:"omitempty,mobile"`
	Email        string `json:"email" form:"email" validate:"omitempty,email"`
	Position     string `json:"position" form:"position" validate:"no_xss"`
	Experience   string `json:"experience" form:"experience" validate:"no_xss"`
	City         string `json:"city" form:"city" validate:"omitempty,objectid,exists=cities"`
	Status       string `json:"status" form:"status" validate:"omitempty,oneof=new shortlisted interviewed hired rejected"`
	Remarks      string `json:"remarks" form:"remarks" validate:"no_xss"`
}
