package application

// SetProfileCommand carries the profile setup form.
type SetProfileCommand struct {
	Name        string
	Email       string
	TravelStyle string
}
