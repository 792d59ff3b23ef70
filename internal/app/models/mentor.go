package models

// Mentor defines the mentor model based on the 'mentors' table.
// Mentors are an independent directory; events reference them by id.
type Mentor struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	Name        string  `json:"name" db:"name" example:"Grace Hopper"`
	Occupation  string  `json:"occupation" db:"occupation" example:"Software Engineer"`
	Description string  `json:"description" db:"description"`
	ImageSrc    string  `json:"imageSrc" db:"image_src"`
	Story       string  `json:"story" db:"story"`
	Instagram   *string `json:"instagram,omitempty" db:"instagram"`
	LinkedIn    *string `json:"linkedin,omitempty" db:"linkedin"`
	Status      string  `json:"status" db:"status" example:"active"`
}
