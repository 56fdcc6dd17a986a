package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
)

const lastDonationLayout = "2006-01-02"

// RegisterDonor walks the user through the donor registration form.
// Optional fields may be left blank.
func (a *App) RegisterDonor(ctx context.Context) error {
	var d models.Donor
	var err error

	if d.Name, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if d.BloodGroup, err = getSimpleText(a.reader, "Blood group ("+strings.Join(models.BloodGroups, ", ")+")", a.out); err != nil {
		return err
	}
	if d.City, err = getSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	if d.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}
	if d.Email, err = getSimpleText(a.reader, "Email (optional)", a.out); err != nil {
		return err
	}

	age, err := getSimpleText(a.reader, "Age (optional)", a.out)
	if err != nil {
		return err
	}
	if age != "" {
		n, convErr := strconv.Atoi(age)
		if convErr != nil {
			a.println("Validation Error: age must be a number.")
			return nil
		}
		d.Age = n
	}

	last, err := getSimpleText(a.reader, "Last donation date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}
	if last != "" {
		if _, perr := time.Parse(lastDonationLayout, last); perr != nil {
			a.println("Validation Error: last donation must look like 2024-01-31.")
			return nil
		}
		d.LastDonation = last
	}

	saved, err := a.donors.Register(ctx, d)
	switch {
	case errors.Is(err, services.ErrValidation):
		a.println("Validation Error:", err)
		return nil
	case errors.Is(err, services.ErrDonorExists):
		a.println("This phone number is already registered for that blood group.")
		return nil
	case err != nil:
		return err
	}

	a.println(fmt.Sprintf("Thank you, %s! You are registered as a %s donor in %s.", saved.Name, saved.BloodGroup, saved.City))
	return nil
}

// FindDonors searches donors by city and blood group. Both may be given as
// arguments; otherwise they are prompted for and blank means any.
func (a *App) FindDonors(ctx context.Context, args []string) error {
	var f models.DonorFilter
	switch len(args) {
	case 0:
		var err error
		if f.City, err = getSimpleText(a.reader, "City (blank for any)", a.out); err != nil {
			return err
		}
		if f.BloodGroup, err = getSimpleText(a.reader, "Blood group (blank for any)", a.out); err != nil {
			return err
		}
	case 1:
		if _, ok := models.NormalizeBloodGroup(args[0]); ok {
			f.BloodGroup = args[0]
		} else {
			f.City = args[0]
		}
	default:
		f.City, f.BloodGroup = args[0], args[1]
	}

	if f.BloodGroup != "" {
		if _, ok := models.NormalizeBloodGroup(f.BloodGroup); !ok {
			a.println(fmt.Sprintf("Unknown blood group %q. Use one of %s.", f.BloodGroup, strings.Join(models.BloodGroups, ", ")))
			return nil
		}
	}

	donors, err := a.donors.Find(ctx, f)
	if err != nil {
		return err
	}
	if len(donors) == 0 {
		a.println("No donors found matching your criteria.")
		return nil
	}

	a.println(fmt.Sprintf("Found %d donor(s):", len(donors)))
	return printDonors(a.out, donors)
}

func (a *App) ListDonors(ctx context.Context) error {
	donors, err := a.donors.List(ctx)
	if err != nil {
		return err
	}
	if len(donors) == 0 {
		a.println("No donors registered yet. Use 'register-donor' to add one.")
		return nil
	}
	return printDonors(a.out, donors)
}

func printDonors(w io.Writer, donors []models.Donor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGROUP\tCITY\tPHONE\tLAST DONATION")
	for _, d := range donors {
		last := d.LastDonation
		if last == "" {
			last = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Name, d.BloodGroup, d.City, d.Phone, last)
	}
	return tw.Flush()
}
