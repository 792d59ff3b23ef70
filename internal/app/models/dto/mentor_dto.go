package dto

// CreateMentorRequest represents the payload to create a mentor
type CreateMentorRequest struct {
	Name        string  `json:"name" binding:"required"`
	Occupation  string  `json:"occupation" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ImageSrc    string  `json:"imageSrc" binding:"required"`
	Story       string  `json:"story" binding:"required"`
	Instagram   *string `json:"instagram,omitempty"`
	LinkedIn    *string `json:"linkedin,omitempty"`
	Status      string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateMentorRequest represents a partial mentor update; nil fields are
// left untouched
type UpdateMentorRequest struct {
	Name        *string `json:"name,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageSrc    *string `json:"imageSrc,omitempty"`
	Story       *string `json:"story,omitempty"`
	Instagram   *string `json:"instagram,omitempty"`
	LinkedIn    *string `json:"linkedin,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}
