package waitlist

// Version is the release of the waitlist module.
// Overridden at build time with -ldflags "-X github.com/aretw0/waitlist.Version=...".
var Version = "0.1.0"
