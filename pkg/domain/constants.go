package domain

// RegistrationEmailKey is the key under which the registered email is persisted.
const RegistrationEmailKey = "registrationEmail"

// DefaultEndpoint is the registration endpoint used when none is configured.
const DefaultEndpoint = "https://us-central1-blinkapp-684c1.cloudfunctions.net/fakeAuth"

// GenericFailureMessage is shown for every failure that carries no server message.
const GenericFailureMessage = "Please try again."

// MinNameLength is the minimum number of characters of a valid name.
const MinNameLength = 3

// Alert copy.
const (
	FailureAlertTitle   = "Oops"
	FailureAlertPrefix  = "We couldn't register you"
	CancelledAlertTitle = "Invitation Successfully Cancelled"
	CancelledAlertBody  = "You will not be notified when the Beta is out."
)
