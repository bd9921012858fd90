/*
Package shopsdk is a Go client for the ChocoMax shop API. The request and
response types are shared with the server's HTTP handlers.

	client := shopsdk.NewClient("https://shop.example.com")

	res, err := client.Login(ctx, "alice@example.com", "correct horse")
	if err != nil {
		var apiErr *shopsdk.APIError
		if errors.As(err, &apiErr) {
			// apiErr.Code is e.g. "invalid_credentials"
		}
		return err
	}
	if res.SecondFactor != nil {
		session, err := client.SubmitSecondFactor(ctx, res.SecondFactor.Token, otp)
		...
	}

Errors returned for non-2xx responses are *APIError and match the predefined
errors with errors.Is:

	if errors.Is(err, shopsdk.ErrInvalidCode) { ... }

Registration is a two step flow. RequestConfirmation mails a link carrying a
one-time token, and Register exchanges that token for an account:

	_, err := client.RequestConfirmation(ctx, "alice@example.com")
	reg, err := client.Register(ctx, shopsdk.RegisterRequest{
		Token:    tokenFromEmail,
		Username: "alice",
		Password: "correct horse",
	})
	fmt.Println(reg.Username, reg.Discriminator)
*/
package shopsdk
