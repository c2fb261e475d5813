/*
Package runner drives the registration flow from a terminal or another program.

The Runner owns the app's logical thread: it multiplexes input lines with
submission results posted to a dispatch.Loop, so flow state is only ever
touched on the goroutine calling Run.

# Key Components

  - Runner: the input loop, screen by screen (home commands, guided
    registration fields, the congratulations screen).
  - IOHandler: presentation plus line input. TextHandler is for people,
    JSONHandler emits one JSON object per line for headless use.
  - SignalManager: the first Ctrl+C cancels a pending submission, the next exits.

# Usage

	loop := dispatch.NewLoop()
	handler := runner.NewTextHandler(os.Stdin, os.Stdout)
	app, _ := waitlist.New(
		waitlist.WithClient(client),
		waitlist.WithPresenter(handler),
		waitlist.WithDispatcher(loop),
	)

	r := runner.NewRunner(
		runner.WithApp(app),
		runner.WithLoop(loop),
		runner.WithInputHandler(handler),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
