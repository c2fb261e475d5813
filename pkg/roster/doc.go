/*
Package roster implements the server-side waitlist behind the local registration API.

Entries live in any ports.KeyValueStore under the "roster:entry:" prefix, keyed by the
lower-cased email. Mutations are serialized by reference-counted local locks and,
when several servers share one backend, by an optional distributed lock.
*/
package roster
