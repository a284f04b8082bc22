package staffdto

// UserCreateInput creates a staff account of the role given by the route.
type UserCreateInput struct {
	Name         string   `json:"name" form:"name" validate:"required,no_xss"`
	Email        string   `json:"email" form:"email" validate:"omitempty,email"`
	MobileNumber string   `json:"mobileNumber" form:"mobileNumber" validate:"required,mobile"`
	Password     string   `json:"password" form:"password" validate:"required,min=6"`
	Designation  string   `json:"designation" form:"designation" validate:"no_xss"`
	Address      string   `json:"address" form:"address" validate:"no_xss"`
	Cities       []string `json:"cities" form:"cities" validate:"dive,objectid"`
}

// UserUpdateInput changes a staff account; empty fields are left untouched.
type UserUpdateInput struct {
	Name         string   `json:"name" form:"name" validate:"no_xss"`
	Email        string   `json:"email" form:"email" validate:"omitempty,email"`
	MobileNumber string   `json:"mobileNumber" form:"mobileNumber" validate:"mobile"`
	Password     string   `json:"password" form:"password" validate:"omitempty,min=6"`
	Designation  string   `json:"designation" form:"designation" validate:"no_xss"`
	Address      string   `json:"address" form:"address" validate:"no_xss"`
	Cities       []string `json:"cities" form:"cities" validate:"dive,objectid"`
}

// TargetInput appends a monthly target.
type TargetInput struct {
	Month    string  `json:"month" validate:"required,datetime=2006-01"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Achieved float64 `json:"achieved" validate:"gte=0"`
}

// StatusInput toggles an account.
type StatusInput struct {
	Active *bool `json:"active" validate:"required"`
}
