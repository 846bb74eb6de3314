package request

// Entry forms arrive as multipart/form-data so file uploads can ride along.
// Mood is deliberately unconstrained here: values outside the allowed set
// are coerced to no mood by the service, not rejected.
type CreateEntryRequest struct {
	Title        string  `form:"title" binding:"required,max=200"`
	Content      string  `form:"content" binding:"required"`
	Mood         string  `form:"mood"`
	EntryDate    string  `form:"entry_date"`
	MusicLink    string  `form:"music_link" binding:"omitempty,url"`
	ImageURL     string  `form:"image_url"`
	Location     string  `form:"location" binding:"omitempty,max=150"`
	PrivacyLevel string  `form:"privacy_level" binding:"omitempty,privacy"`
	Tags         string  `form:"tags"`
	CategoryID   *uint64 `form:"category_id"`
}

type UpdateEntryRequest struct {
	Title        string  `form:"title" binding:"required,max=200"`
	Content      string  `form:"content" binding:"required"`
	Mood         string  `form:"mood"`
	MusicLink    string  `form:"music_link" binding:"omitempty,url"`
	Location     string  `form:"location" binding:"omitempty,max=150"`
	PrivacyLevel string  `form:"privacy_level" binding:"omitempty,privacy"`
	Tags         string  `form:"tags"`
	CategoryID   *uint64 `form:"category_id"`
}

type FeedQuery struct {
	Search string `form:"search"`
	Mood   string `form:"mood" binding:"omitempty,mood|eq=all"`
	Sort   string `form:"sort" binding:"omitempty,oneof=newest oldest popular"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"omitempty,max=255"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Icon        string `json:"icon" binding:"omitempty,max=20"`
}

type ReactionRequest struct {
	EntryID uint64 `json:"entry_id" binding:"required"`
}

type RoleUpdateRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type ToggleActiveRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}
