package referencedto

// ReferenceCreateInput creates a city, category or lead source.
type ReferenceCreateInput struct {
	Name   string `json:"name" form:"name" validate:"required,max=100,no_xss"`
	Active *bool  `json:"active" form:"active"`
}

// ReferenceUpdateInput renames or toggles an entry.
type ReferenceUpdateInput struct {
	Name   string `json:"name" form:"name" validate:"omitempty,max=100,no_xss"`
	Active *bool  `json:"active" form:"active"`
}
