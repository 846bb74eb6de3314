package request

type RegisterRequest struct {
	Username         string `json:"username" binding:"required,min=3"`
	Password         string `json:"password" binding:"required,min=6"`
	FullName         string `json:"full_name" binding:"omitempty,max=100"`
	SecurityQuestion string `json:"security_question" binding:"omitempty,max=255"`
	SecurityAnswer   string `json:"security_answer" binding:"omitempty,max=255"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

// ProfileRequest binds the multipart profile form; the optional picture
// file rides alongside and is handled separately.
type ProfileRequest struct {
	FullName    string `form:"full_name" binding:"omitempty,max=100"`
	DateOfBirth string `form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

type ResetStartRequest struct {
	Username string `json:"username" binding:"required"`
}

type ResetAnswerRequest struct {
	Token  string `json:"token" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

type ResetCompleteRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}
