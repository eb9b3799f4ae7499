package types

// Request schemas. One declarative description per resource; handlers run
// them through validators.Check before any persistence call.
//
// Child records in ProjectRequest declare only client-owned fields, so
// server-generated attributes (id, createdAt, updatedAt, projectId) sent by
// the admin UI are dropped on decode before validation ever sees them.

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=8"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Bio      string `json:"bio"`
	Resume   string `json:"resume" validate:"omitempty,uri"`
}

type UpdateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
	Bio    string `json:"bio"`
	Resume string `json:"resume" validate:"omitempty,uri"`
}

type PhoneNumberRequest struct {
	Number string `json:"number" validate:"required,phone"`
	Type   string `json:"type"`
}

type SocialLinkRequest struct {
	Platform string `json:"platform" validate:"required,oneof=GitHub LinkedIn Twitter Facebook Instagram Other"`
	URL      string `json:"url" validate:"required,uri"`
}

type SkillRequest struct {
	Skill string `json:"skill" validate:"required,min=3"`
}

type TechStackInput struct {
	Category string `json:"category" validate:"required,oneof=FRONTEND BACKEND DATABASE DEVOPS MOBILE TOOLS TESTING DESIGN OFFICE OTHER"`
	Skill    string `json:"skill" validate:"required,min=1"`
}

type ScreenshotInput struct {
	URL string `json:"url" validate:"required,uri"`
}

type ProjectRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=100"`
	Description string            `json:"description" validate:"required,min=10"`
	Category    string            `json:"category" validate:"required,oneof=PERSONAL CLIENT SCHOOL WORK HACKATHON OPEN_SOURCE FREELANCE OTHER"`
	Link        string            `json:"link" validate:"required,uri"`
	TechStacks  []TechStackInput  `json:"techStacks" validate:"required,min=1,dive"`
	Screenshots []ScreenshotInput `json:"screenshots" validate:"required,min=1,dive"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type DownloadLogRequest struct {
	FileURL   string `json:"fileUrl" validate:"required,uri"`
	IPAddress string `json:"ipAddress" validate:"required,ip"`
	UserAgent string `json:"userAgent" validate:"required"`
}
