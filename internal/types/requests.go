package types

// Outbound payloads validated before they go over the wire. The backend
// accepts whatever it is sent, so this is the only input validation the
// platform has.

type RegisterRequest struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Username string `validate:"required" json:"username"`
	Password string `validate:"required,min=6" json:"password"`
}

// ProfileUpdate carries the settings form. The three password fields must be
// filled together or left empty together.
type ProfileUpdate struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `validate:"omitempty,email" json:"email"`
	Bio        string `json:"bio"`
	Avatar     string `validate:"omitempty,url" json:"avatar"`
	Department string `json:"department"`

	CurrentPassword string `json:"-"`
	NewPassword     string `json:"-"`
	ConfirmPassword string `json:"-"`
}

type EventRequest struct {
	Title            string `validate:"required" json:"title"`
	Location         string `validate:"required" json:"location"`
	Date             string `validate:"required" json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Campus           string `validate:"required" json:"campus"`
	TreeCount        int    `validate:"min=0" json:"tree_count"`
	ParticipantLimit int    `validate:"min=0" json:"participant_limit"`
	Description      string `json:"description"`
}
