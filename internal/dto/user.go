package dto

// UserRequest is the POST and PUT /users/:clerkId body. ClerkID comes from
// the path and is never writable through the body.
type UserRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	ProfilePic string `json:"profilePic"`
}

// UploadResponse is the POST /upload success body.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
	ImageID  string `json:"imageId"`
}
