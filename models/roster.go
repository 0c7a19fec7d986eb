package models

// Role distinguishes a Director of Photography from general cast within
// a roster. The upstream wire format is the string tag in
// "Name - Role"; the typed form is what all downstream logic uses.
type Role string

const (
	RoleCreator Role = "creator"
	RoleDOP     Role = "dop"
)

// Person is one roster candidate, parsed out of the upstream
// "Name - Role" string at the gateway boundary.
type Person struct {
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Display string `json:"display"` // original wire string, used for selection round-trips
}
