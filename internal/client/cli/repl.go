package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Home(ctx context.Context) error
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	RegisterDonor(ctx context.Context) error
	FindDonors(ctx context.Context, args []string) error
	ListDonors(ctx context.Context) error
	About(ctx context.Context) error
	Contact(ctx context.Context) error
	Reset(ctx context.Context) error
	NotFound(ctx context.Context, cmd string) error
}

const (
	helpGuest    = "Available commands: home, signup, login, register-donor, find [city] [group], donors, about, contact, reset, exit"
	helpSignedIn = "Available commands: home, whoami, logout, register-donor, find [city] [group], donors, about, contact, reset, exit"
)

// runREPL starts a simple read-eval-print loop for the Blood Connect CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands show the Not Found page.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	  - help                 show available commands
//	  - home                 landing page with donor statistics
//	  - signup               create an account and sign in
//	  - login                sign in
//	  - logout               sign out
//	  - whoami               show the signed-in profile
//	  - register-donor       register as a blood donor
//	  - find [city] [group]  search donors
//	  - donors               list every donor
//	  - about                about page
//	  - contact              send a message to the team
//	  - reset                wipe local data
//	  - exit | quit          leave the program
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bc%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "home":
			cmdErr = a.Home(ctx)

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "register-donor", "register":
			cmdErr = a.RegisterDonor(ctx)

		case "find", "find-donors":
			cmdErr = a.FindDonors(ctx, args)

		case "donors":
			cmdErr = a.ListDonors(ctx)

		case "about":
			cmdErr = a.About(ctx)

		case "contact":
			cmdErr = a.Contact(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			cmdErr = a.NotFound(ctx, cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
