package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
	"github.com/dmitrijs2005/bloodconnect/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Signup prompts for name, email and a confirmed password and creates an
// account through the session in ctx. The new account is signed in.
//
// Form problems and a taken email are reported to the user and return nil.
// Only I/O and credential store failures are returned as errors.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := validateSignup(name, email, password, confirm); err != nil {
		a.println("Validation Error:", err)
		return nil
	}

	ok, err := services.Session(ctx).Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}
	if !ok {
		a.println("Signup Failed: Email already exists. Please use a different email.")
		return nil
	}

	a.println(fmt.Sprintf("Account Created! Welcome to %s, %s.", common.AppName, name))
	return nil
}

// Login prompts for email and password and signs in through the session in
// ctx. Wrong credentials leave the current user signed in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateLogin(email, password); err != nil {
		a.println("Validation Error:", err)
		return nil
	}

	ok, err := services.Session(ctx).Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if !ok {
		a.println("Login Failed: Invalid email or password. Please try again.")
		return nil
	}

	u, _ := services.Session(ctx).User()
	a.println(fmt.Sprintf("Login Successful! Welcome back, %s.", u.Name))
	return nil
}

// Logout always clears the stored session, so a slot left behind by a failed
// restore is removed even when nobody appears signed in.
func (a *App) Logout(ctx context.Context) error {
	sess := services.Session(ctx)
	_, signedIn := sess.User()
	if err := sess.Logout(ctx); err != nil {
		return err
	}
	if !signedIn {
		a.println("You are not signed in.")
		return nil
	}
	a.println("Signed out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := services.Session(ctx).User()
	if !ok {
		a.println("Not signed in. Use 'login' or 'signup'.")
		return nil
	}
	a.println(fmt.Sprintf("%s <%s> (id %s)", u.Name, u.Email, u.ID))
	return nil
}

// Reset wipes every slot in the local store after confirmation and signs out.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes all accounts, donors and the saved session. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		a.println("Cancelled.")
		return nil
	}

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	if err := services.Session(ctx).Logout(ctx); err != nil {
		return err
	}
	a.println("Local data cleared.")
	return nil
}
