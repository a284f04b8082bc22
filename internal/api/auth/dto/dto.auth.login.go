package authdto

// LoginInput accepts an email, mobile number or user code as identifier.
type LoginInput struct {
	Identifier string `json:"identifier" form:"identifier" validate:"required"`
	Password   string `json:"password" form:"password" validate:"required"`
}
