package businessdto

// BusinessCreateInput creates a business lead. Dates accept YYYY-MM-DD or RFC3339.
type BusinessCreateInput struct {
	BusinessName      string `json:"businessName" form:"businessName" validate:"required,no_xss"`
	ContactPersonName string `json:"contactPersonName" form:"contactPersonName" validate:"no_xss"`
	MobileNumber      string `json:"mobileNumber" form:"mobileNumber" validate:"required,mobile"`
	Email             string `json:"email" form:"email" validate:"omitempty,email"`
	Address           string `json:"address" form:"address" validate:"no_xss"`
	City              string `json:"city" form:"city" validate:"omitempty,objectid,exists=cities"`
	Category          string `json:"category" form:"category" validate:"omitempty,objectid,exists=categories"`
	Source            string `json:"source" form:"source" validate:"omitempty,objectid,exists=sources"`
	Status            string `json:"status" form:"status"`
	FollowUpDate      string `json:"followUpDate" form:"followUpDate"`
	AppointmentDate   string `json:"appointmentDate" form:"appointmentDate"`
	Remarks           string `json:"remarks" form:"remarks" validate:"no_xss"`
	AssignedTo        string `json:"assignedTo" form:"assignedTo" validate:"omitempty,objectid"`
	LeadBy            string `json:"leadBy" form:"leadBy" validate:"omitempty,objectid"`
}

// BusinessUpdateInput changes a business; empty fields are left untouched.
type BusinessUpdateInput struct {
	BusinessName      string `json:"businessName" form:"businessName" validate:"no_xss"`
	ContactPersonName string `json:"contactPersonName" form:"contactPersonName" validate:"no_xss"`
	MobileNumber      string `json:"mobileNumber" form:"mobileNumber" validate:"mobile"`
	Email             string `json:"email" form:"email" validate:"omitempty,email"`
	Address           string `json:"address" form:"address" validate:"no_xss"`
	City              string `json:"city" form:"city" validate:"omitempty,objectid,exists=cities"`
	Category          string `json:"category" form:"category" validate:"omitempty,objectid,exists=categories"`
	Source            string `json:"source" form:"source" validate:"omitempty,objectid,exists=sources"`
	Status            string `json:"status" form:"status"`
	FollowUpDate      string `json:"followUpDate" form:"followUpDate"`
	AppointmentDate   string `json:"appointmentDate" form:"appointmentDate"`
	Remarks           string `json:"remarks" form:"remarks" validate:"no_xss"`
	AssignedTo        string `json:"assignedTo" form:"assignedTo" validate:"omitempty,objectid"`
	LeadBy            string `json:"leadBy" form:"leadBy" validate:"omitempty,objectid"`
}

// VisitResultInput records the outcome of a visit. Status, when set, also moves the primary
// status.
type VisitResultInput struct {
	Reason    string `json:"reason" form:"reason" validate:"required"`
	VisitDate string `json:"visitDate" form:"visitDate"`
	Remarks   string `json:"remarks" form:"remarks" validate:"no_xss"`
	Status    string `json:"status" form:"status"`
}
