/*
Package domain contains the core domain models of the waitlist registration flow.

It defines the values that travel between the flow components, the typed errors they
exchange, and the navigation events the coordinator reacts to. This package is kept
pure and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Registration: the (name, email) pair submitted by a user.
  - RegistrationError: a failed submission (server message, network or internal failure).
  - Screen: an opaque token for a presented screen (Home, Registration, Congratulations).
  - Event: the single tagged event type routed through the navigation coordinator.
  - HomeView: what the home screen shows for a given registration state.
*/
package domain
