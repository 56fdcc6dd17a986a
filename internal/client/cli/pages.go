package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/common"
)

// Figures shown on the home page that the client has no local source for.
const (
	requestsFulfilled = 340
	livesSaved        = 150
)

type feature struct {
	title, description string
}

var homeFeatures = []feature{
	{"Safe & Secure", "All donor information is encrypted and secure. We follow strict medical protocols."},
	{"Quick Response", "Find matching donors instantly with our smart filtering system."},
	{"Nationwide Network", "Connected with donors across the country to ensure help is always available."},
}

var aboutFeatures = []feature{
	{"Safe & Secure", "All donor information is encrypted and protected with industry-standard security measures."},
	{"24/7 Availability", "Our platform is available round the clock to help you find donors when you need them most."},
	{"Large Network", "Connected with thousands of verified donors across multiple cities and blood groups."},
	{"Verified Donors", "All our registered donors go through a verification process to ensure authenticity."},
	{"Nationwide Coverage", "Our network spans across major cities in India, ensuring help is always within reach."},
	{"Community Impact", "Every connection made through our platform contributes to saving precious lives."},
}

// Home prints the landing page. Donor and city counts come from the local
// donor registry.
func (a *App) Home(ctx context.Context) error {
	donors, err := a.donors.List(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Save a Life. Donate Blood.\n")
	b.WriteString("Join thousands of heroes who are making a difference. Your donation can save up to 3 lives.\n\n")
	fmt.Fprintf(&b, "  %-20s %d\n", "Registered Donors", len(donors))
	fmt.Fprintf(&b, "  %-20s %d+\n", "Requests Fulfilled", requestsFulfilled)
	fmt.Fprintf(&b, "  %-20s %d\n", "Cities Covered", countCities(donors))
	fmt.Fprintf(&b, "  %-20s %d+\n\n", "Lives Saved", livesSaved)
	writeFeatures(&b, homeFeatures)
	b.WriteString("\nUse 'register-donor' to become a donor or 'find' to search donors.")

	a.println(b.String())
	return nil
}

func (a *App) About(ctx context.Context) error {
	var b strings.Builder
	b.WriteString("Our Mission\n")
	fmt.Fprintf(&b, "%s was founded with a simple yet powerful mission: to bridge the gap between blood donors and those in critical need.\n\n", common.AppName)
	fmt.Fprintf(&b, "Why Choose %s?\n", common.AppName)
	writeFeatures(&b, aboutFeatures)
	b.WriteString("\nGet in Touch\n")
	b.WriteString("  Phone    +91 95144 92830\n")
	b.WriteString("  Email    support@bloodconnect.com\n")
	b.WriteString("  Address  123 Health Street, Medical District, Chennai 400001, Tamil Nadu, India\n")
	b.WriteString("\nUse 'contact' to send us a message.")

	a.println(b.String())
	return nil
}

// NotFound is shown for any command the REPL does not know.
func (a *App) NotFound(_ context.Context, cmd string) error {
	a.println(fmt.Sprintf("404: %q is not a page. Type 'help' for commands or 'home' to go back.", cmd))
	return nil
}

func writeFeatures(b *strings.Builder, fs []feature) {
	for _, f := range fs {
		fmt.Fprintf(b, "  * %s: %s\n", f.title, f.description)
	}
}

func countCities(donors []models.Donor) int {
	seen := make(map[string]struct{}, len(donors))
	for _, d := range donors {
		seen[strings.ToLower(d.City)] = struct{}{}
	}
	return len(seen)
}
