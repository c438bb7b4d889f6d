package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/primalspirits/signup-page/pkg/signupform"
)

var (
	endpoint   string
	timeout    time.Duration
	resetDelay time.Duration

	fullName string
	email    string
	phone    string

	rootCmd = &cobra.Command{
		Use:           "signupctl",
		Short:         "Submit Primal Gin newsletter signups to a running signup server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	submitCmd = &cobra.Command{
		Use:   "submit",
		Short: "Validate and submit one signup from flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSubmit(cmd.Context(), cmd.OutOrStdout(), newSubmitter(), signupform.Fields{
				FullName: fullName,
				Email:    email,
				Phone:    phone,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.Error.Render(err.Error()))
			}
			return err
		},
	}

	formCmd = &cobra.Command{
		Use:   "form",
		Short: "Collect signups interactively until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.Context(), cmd.OutOrStdout(), newSubmitter(), resetDelay)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080/api/signup",
		"Signup endpoint of the server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")

	submitCmd.Flags().StringVar(&fullName, "name", "", "Full name (first and last)")
	submitCmd.Flags().StringVar(&email, "email", "", "Email address")
	submitCmd.Flags().StringVar(&phone, "phone", "", "Phone number, local (0...) or international (+...)")

	formCmd.Flags().DurationVar(&resetDelay, "reset-delay", signupform.DefaultResetDelay,
		"How long the thank-you message is shown before the form starts over")

	rootCmd.AddCommand(submitCmd, formCmd)
}

func newSubmitter() signupform.Submitter {
	return signupform.NewHTTPSubmitter(endpoint, &http.Client{Timeout: timeout})
}

// runSubmit sends one signup and prints the outcome
func runSubmit(ctx context.Context, out io.Writer, submitter signupform.Submitter, fields signupform.Fields) error {
	form := signupform.NewController(submitter)
	defer form.Close()

	form.SetFields(fields)
	if err := form.Submit(ctx); err != nil {
		printFormErrors(out, form.State())
		return err
	}
	printThanks(out)
	return nil
}

// runForm shows the form, submits it, holds the thank-you message for the
// reset delay and starts over with a clean form. Failed submissions keep the
// entered values.
func runForm(ctx context.Context, out io.Writer, submitter signupform.Submitter, delay time.Duration) error {
	for {
		reset := make(chan struct{})
		form := signupform.NewController(submitter,
			signupform.WithResetDelay(delay),
			signupform.WithOnReset(func(signupform.FormState) { close(reset) }),
		)

		err := collect(ctx, out, form)
		if err != nil {
			form.Close()
			if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		printThanks(out)
		select {
		case <-reset:
		case <-ctx.Done():
			form.Close()
			return nil
		}
		form.Close()
	}
}

// collect prompts until the form submits successfully
func collect(ctx context.Context, out io.Writer, form *signupform.Controller) error {
	var fields signupform.Fields
	for {
		prompt := huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title("Get Exclusive Primal Gin Offers").
					Description("Sign up to receive the latest news, launches, and special deals from Primal Gin."),
				huh.NewInput().
					Title(fieldLabels[signupform.FieldFullName]).
					Placeholder("Your full name").
					Value(&fields.FullName).
					Validate(fieldValidator(signupform.FieldFullName)),
				huh.NewInput().
					Title(fieldLabels[signupform.FieldEmail]).
					Placeholder("you@email.com").
					Value(&fields.Email).
					Validate(fieldValidator(signupform.FieldEmail)),
				huh.NewInput().
					Title(fieldLabels[signupform.FieldPhone]).
					Placeholder("+27 79 123 2287").
					Value(&fields.Phone).
					Validate(fieldValidator(signupform.FieldPhone)),
			),
		)
		if err := prompt.RunWithContext(ctx); err != nil {
			return err
		}

		form.SetFields(fields)
		fmt.Fprintln(out, styles.Muted.Render("Submitting..."))
		err := form.Submit(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, signupform.ErrClosed) || ctx.Err() != nil {
			return context.Canceled
		}
		printFormErrors(out, form.State())
	}
}

// fieldValidator checks a single input with the form's own rules
func fieldValidator(field signupform.Field) func(string) error {
	return func(value string) error {
		var f signupform.Fields
		switch field {
		case signupform.FieldFullName:
			f.FullName = value
		case signupform.FieldEmail:
			f.Email = value
		case signupform.FieldPhone:
			f.Phone = value
		}
		if msg, ok := signupform.Validate(f)[field]; ok {
			return errors.New(msg)
		}
		return nil
	}
}
