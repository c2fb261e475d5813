/*
Package registration holds the client-side record of the user's registration.

Store persists the registered email under a single key of any ports.KeyValueStore.
State is the one in-memory source of truth built on top of it: observers receive the
current Status on subscription and every change after, and the store write always
completes before observers are notified.
*/
package registration
