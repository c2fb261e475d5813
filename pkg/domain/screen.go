package domain

// Screen is an opaque token for a presented screen.
type Screen string

const (
	ScreenHome            Screen = "home"
	ScreenRegistration    Screen = "registration"
	ScreenCongratulations Screen = "congratulations"
)

// Alert is a dismissible notice presented over the current screen.
type Alert struct {
	Title   string
	Message string
}
