package domain

import (
	"context"
	"time"
)

// EventKind defines the category of a navigation event.
type EventKind string

const (
	EventRegisterRequested        EventKind = "register_requested"
	EventRegistrationCompleted    EventKind = "registration_completed"
	EventRegistrationFailed       EventKind = "registration_failed"
	EventCongratulationsDismissed EventKind = "congratulations_dismissed"
	EventScreenDismissedByUser    EventKind = "screen_dismissed_by_user"
	EventInvitationCancelled      EventKind = "invitation_cancelled"
)

// Event is the single tagged event type handled by the navigation coordinator.
type Event struct {
	Kind EventKind
	// Message is the user-facing failure text for EventRegistrationFailed.
	Message string
}

// SubmitEvent describes one registration submission.
type SubmitEvent struct {
	Timestamp    time.Time
	RequestID    string
	Registration Registration
	Duration     time.Duration // Zero on OnSubmit.
	Err          error         // Nil on success.
}

// FlowHooks defines callbacks for registration flow observability.
type FlowHooks struct {
	OnSubmit func(context.Context, *SubmitEvent)
	OnResult func(context.Context, *SubmitEvent)
}
