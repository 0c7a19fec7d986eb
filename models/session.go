package models

// Session is the minimal user record established by a successful login.
// Authentication itself is delegated to the external auth script; this
// record is what the upstream echoed back.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
