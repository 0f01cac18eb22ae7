package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/services"
	"github.com/dmitrijs2005/featurevote/internal/client/session"
	"github.com/dmitrijs2005/featurevote/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// Register prompts for name, email and password, creates the account and
// logs in with the same credentials.
//
// When the account is created but the follow-up login fails, the user is
// told to log in manually; this is reported apart from a failed registration.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.mutation.Run("register", func() error {
		_, err := a.authService.Register(ctx, name, email, string(password))
		return err
	})

	var regErr *services.RegistrationError
	switch {
	case err == nil:
		a.afterLogin(ctx)
		fmt.Fprintf(a.out, "Account created. Logged in as %s\n", email)
		return nil
	case errors.Is(err, services.ErrSessionNotEstablished):
		fmt.Fprintln(a.out, "Account created, but logging in failed. Please log in.")
	case errors.As(err, &regErr):
		fmt.Fprintf(a.out, "Registration failed: %s\n", regErr.Err)
	default:
		fmt.Fprintf(a.out, "Registration failed: %s\n", err)
	}
	return err
}

// Login prompts for credentials and stores the session on success. A 401
// here means wrong credentials, not an expired session, so the backend
// message is shown as is.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.mutation.Run("login", func() error {
		_, err := a.authService.Login(ctx, email, string(password))
		return err
	})
	if err != nil {
		a.logger.Debug(ctx, "login failed", "email", email, "error", err)
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}

	a.afterLogin(ctx)
	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

func (a *App) afterLogin(ctx context.Context) {
	sess, err := a.authService.Current(ctx)
	if err != nil || sess == nil {
		a.logger.Warn(ctx, "session missing right after login", "error", err)
		return
	}
	a.setUser(sess.User)
	a.page = services.DefaultPage
	a.lastPage = nil
}

// Logout forgets the stored session and every cached read.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err)
		return err
	}
	a.setUser(nil)
	a.mutation = Mutation{}
	a.lastPage = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the stored user and what the access token says about itself.
func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.authService.Current(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if sess == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return common.ErrNotLoggedIn
	}

	fmt.Fprintf(a.out, "%s <%s>\n", sess.User.Name, sess.User.Email)
	if sub, exp, ok := session.TokenClaims(sess.AccessToken); ok {
		if sub != "" {
			fmt.Fprintf(a.out, "  token subject: %s\n", sub)
		}
		if !exp.IsZero() {
			fmt.Fprintf(a.out, "  token expires: %s\n", exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}
