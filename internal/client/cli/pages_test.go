package cli

import (
	"testing"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_CountsLocalDonors(t *testing.T) {
	a, ctx, out := newTestApp(t)
	seedDonors(t, a)

	require.NoError(t, a.Home(ctx))

	s := out.String()
	assert.Contains(t, s, "Save a Life. Donate Blood.")
	assert.Regexp(t, `Registered Donors\s+3\n`, s)
	assert.Regexp(t, `Cities Covered\s+3\n`, s)
	assert.Regexp(t, `Lives Saved\s+150\+`, s)
}

func TestCountCities_IgnoresCase(t *testing.T) {
	got := countCities([]models.Donor{{City: "Chennai"}, {City: "chennai"}, {City: "Pune"}})
	assert.Equal(t, 2, got)
}

func TestAbout(t *testing.T) {
	a, ctx, out := newTestApp(t)

	require.NoError(t, a.About(ctx))
	s := out.String()
	assert.Contains(t, s, "Our Mission")
	assert.Contains(t, s, "+91 95144 92830")
	assert.Contains(t, s, "support@bloodconnect.com")
}

func TestNotFound(t *testing.T) {
	a, ctx, out := newTestApp(t)

	require.NoError(t, a.NotFound(ctx, "dance"))
	assert.Contains(t, out.String(), `404: "dance" is not a page`)
}
