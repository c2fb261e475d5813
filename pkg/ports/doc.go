/*
Package ports defines the driven ports (interfaces) of the waitlist flow.

These interfaces decouple the flow logic from external implementations, allowing the
same controller and coordinator to run against different storage backends, transports
and presentation layers.

# Key Interfaces

  - KeyValueStore: durable string persistence (memory, file, redis).
  - RegistrationClient: submits a registration over the network.
  - Presenter: receives screen and alert commands.
  - Dispatcher: delivers asynchronous results onto the owning logical thread.
  - DistributedLocker: serializes roster updates across server replicas.
*/
package ports
