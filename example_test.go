package waitlist_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/waitlist"
	"github.com/aretw0/waitlist/pkg/dispatch"
	"github.com/aretw0/waitlist/pkg/domain"
)

// echoClient accepts every registration.
type echoClient struct{}

func (echoClient) Submit(_ context.Context, r domain.Registration) (domain.Registration, error) {
	return r, nil
}

// printPresenter writes presenter commands to stdout.
type printPresenter struct{}

func (printPresenter) PresentScreen(_ context.Context, s domain.Screen) error {
	fmt.Println("present", s)
	return nil
}

func (printPresenter) DismissScreen(_ context.Context, s domain.Screen) error {
	fmt.Println("dismiss", s)
	return nil
}

func (printPresenter) PresentAlert(_ context.Context, a domain.Alert) error {
	fmt.Println("alert", a.Title)
	return nil
}

// ExampleApp shows a full registration against an in-process client.
func ExampleApp() {
	ctx := context.Background()
	loop := dispatch.NewLoop()
	defer loop.Close()

	app, err := waitlist.New(
		waitlist.WithClient(echoClient{}),
		waitlist.WithPresenter(printPresenter{}),
		waitlist.WithDispatcher(loop),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Start(ctx); err != nil {
		log.Fatal(err)
	}

	app.ObserveHome(func(h domain.HomeView) {
		fmt.Println("home:", h.Description)
	})

	if err := app.RequestRegistration(ctx); err != nil {
		log.Fatal(err)
	}

	f := app.Form()
	f.SetName("User")
	f.SetEmail("user@email.com")
	f.SetConfirmEmail("user@email.com")
	if err := f.Submit(ctx); err != nil {
		log.Fatal(err)
	}

	// Apply the submission result on this goroutine.
	(<-loop.Tasks())()

	fmt.Println("stack:", app.Stack())
	// Output:
	// home: This service is in closed beta for people who have requested an invite.
	// present registration
	// home: You have successfully registered user@email.com
	// dismiss registration
	// present congratulations
	// stack: [home congratulations]
}
