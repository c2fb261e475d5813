package domain

import "fmt"

// HomeView is what the home screen shows for a registration state.
type HomeView struct {
	Description  string
	ShowRegister bool
	ShowCancel   bool
}

// NewHomeView derives the home screen from the registered email, if any.
func NewHomeView(email string, registered bool) HomeView {
	if registered {
		return HomeView{
			Description: fmt.Sprintf("You have successfully registered %s", email),
			ShowCancel:  true,
		}
	}
	return HomeView{
		Description:  "This service is in closed beta for people who have requested an invite.",
		ShowRegister: true,
	}
}
