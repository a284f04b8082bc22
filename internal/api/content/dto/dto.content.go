package contentdto

// BlogCreateInput creates a blog; the cover arrives as the "image" form file.
type BlogCreateInput struct {
	Title     string   `json:"title" form:"title" validate:"required,max=200,no_xss"`
	Slug      string   `json:"slug" form:"slug" validate:"omitempty,max=200"`
	Excerpt   string   `json:"excerpt" form:"excerpt" validate:"max=500,no_xss"`
	Content   string   `json:"content" form:"content" validate:"required"`
	Tags      []string `json:"tags" form:"tags" validate:"dive,no_xss"`
	Published bool     `json:"published" form:"published"`
}

// BlogUpdateInput changes a blog; empty fields are left untouched.
type BlogUpdateInput struct {
	Title     string   `json:"title" form:"title" validate:"max=200,no_xss"`
	Slug      string   `json:"slug" form:"slug" validate:"max=200"`
	Excerpt   string   `json:"excerpt" form:"excerpt" validate:"max=500,no_xss"`
	Content   string   `json:"content" form:"content"`
	Tags      []string `json:"tags" form:"tags" validate:"dive,no_xss"`
	Published *bool    `json:"published" form:"published"`
}

// JobPostInput creates or replaces the fields of a job post.
type JobPostInput struct {
	Title       string   `json:"title" form:"title" validate:"required,max=200,no_xss"`
	Location    string   `json:"location" form:"location" validate:"no_xss"`
	Experience  string   `json:"experience" form:"experience" validate:"no_xss"`
	Salary      string   `json:"salary" form:"salary" validate:"no_xss"`
	Description string   `json:"description" form:"description" validate:"required"`
	Skills      []string `json:"skills" form:"skills" validate:"dive,no_xss"`
	Active      *bool    `json:"active" form:"active"`
}

// JobPostUpdateInput changes a job post; empty fields are left untouched.
type JobPostUpdateInput struct {
	Title       string   `json:"title" form:"title" validate:"max=200,no_xss"`
	Location    string   `json:"location" form:"location" validate:"no_xss"`
	Experience  string   `json:"experience" form:"experience" validate:"no_xss"`
	Salary      string   `json:"salary" form:"salary" validate:"no_xss"`
	Description string   `json:"description" form:"description"`
	Skills      []string `json:"skills" form:"skills" validate:"dive,no_xss"`
	Active      *bool    `json:"active" form:"active"`
}

// ApplicationCreateInput is the public application form; the resume is the "resume" file.
type ApplicationCreateInput struct {
	JobPost      string `json:"jobPost" form:"jobPost" validate:"required"`
	Name         string `json:"name" form:"name" validate:"required,max=100,no_xss"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" validate:"required,mobile"`
	Email        string `json:"email" form:"email" validate:"omitempty,email"`
	CoverLetter  string `json:"coverLetter" form:"coverLetter" validate:"max=5000,no_xss"`
}

// ApplicationUpdateInput moves an application through review.
type ApplicationUpdateInput struct {
	Status string `json:"status" form:"status" validate:"required,oneof=received shortlisted rejected"`
}

// WhatsAppTemplateInput creates a template; media arrives as the "media" form file.
type WhatsAppTemplateInput struct {
	Title    string `json:"title" form:"title" validate:"required,max=200,no_xss"`
	Message  string `json:"message" form:"message" validate:"required,max=4096"`
	Category string `json:"category" form:"category" validate:"omitempty,objectid,exists=categories"`
	Active   *bool  `json:"active" form:"active"`
}

// WhatsAppTemplateUpdateInput changes a template; empty fields are left untouched.
type WhatsAppTemplateUpdateInput struct {
	Title    string `json:"title" form:"title" validate:"max=200,no_xss"`
	Message  string `json:"message" form:"message" validate:"max=4096"`
	Category string `json:"category" form:"category" validate:"omitempty,objectid,exists=categories"`
	Active   *bool  `json:"active" form:"active"`
}
