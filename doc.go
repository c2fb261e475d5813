/*
Package waitlist implements the registration flow of a closed-beta waitlist.

A user on the home screen asks to register, fills a three-field form (name, email,
email confirmation), and submits it to a remote endpoint. On success the email is
persisted, the home screen reflects it, and a congratulations screen is shown. On
failure an alert explains what went wrong and the user stays on the form.

# Architecture

The flow follows a hexagonal layout. The core pieces never touch I/O directly:

  - registration.State: the single observable source of truth for "who is registered".
  - form.Controller: field validation, the enabled flag and submit orchestration.
  - navigation.Coordinator: the screen stack and the presenter commands.
  - ports: the interfaces the core is driven through (store, client, presenter, dispatcher).

App wires these together. Hosts provide a ports.Presenter for their UI and a
ports.Dispatcher that runs submission results on the thread owning the flow.

# Usage

	client := http.NewClient("https://example.com/register")
	loop := dispatch.NewLoop()

	app, err := waitlist.New(
		waitlist.WithClient(client),
		waitlist.WithPresenter(myPresenter),
		waitlist.WithDispatcher(loop),
		waitlist.WithStore(memory.NewStore()),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Start(ctx); err != nil {
		log.Fatal(err)
	}

	_ = app.RequestRegistration(ctx)
	f := app.Form()
	f.SetName("User")
	f.SetEmail("user@email.com")
	f.SetConfirmEmail("user@email.com")
	_ = f.Submit(ctx)

	// Results arrive on the loop.
	go loop.Run(ctx)

The terminal host in pkg/runner and the cmd/waitlist CLI show a complete integration.
*/
package waitlist
