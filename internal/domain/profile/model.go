package profile

import "fmt"

// Profile is a registered participant. Every profile gets exactly one
// score row per calculated gameweek, picked or not.
type Profile struct {
	ID        string
	Username  string
	TeamName  string
	AvatarURL string
	IsAdmin   bool
}

func (p Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	if p.Username == "" {
		return fmt.Errorf("profile username is required")
	}

	return nil
}
