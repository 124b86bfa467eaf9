package model

// User is the locally fabricated identity kept in the session blob.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	PhotoURL   string `json:"photo_url,omitempty"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

type UserLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	// Provider selects a fabricated provider account, e.g. "google". Empty means email login.
	Provider string `json:"provider"`
}
