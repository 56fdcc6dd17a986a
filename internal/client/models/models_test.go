package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_ProfileDropsPassword(t *testing.T) {
	a := Account{ID: "1", Name: "Alice", Email: "a@x.com", Password: "secret1"}
	p := a.Profile()

	assert.Equal(t, SessionProfile{ID: "1", Name: "Alice", Email: "a@x.com"}, p)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.JSONEq(t, `{"id":"1","name":"Alice","email":"a@x.com"}`, string(b))
}

func TestAccount_JSONLayout(t *testing.T) {
	var accounts []Account
	raw := `[{"id":"1700000000000","name":"Alice","email":"a@x.com","password":"secret1"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "1700000000000", accounts[0].ID)
	assert.Equal(t, "secret1", accounts[0].Password)
}

func TestNormalizeBloodGroup(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"a+", "A+", true},
		{" ab- ", "AB-", true},
		{"O+", "O+", true},
		{"C+", "C+", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeBloodGroup(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestDonorFilter_Matches(t *testing.T) {
	d := Donor{Name: "Ravi", City: "New Delhi", BloodGroup: "B+"}

	assert.True(t, DonorFilter{}.Matches(d))
	assert.True(t, DonorFilter{City: "delhi"}.Matches(d))
	assert.True(t, DonorFilter{City: "  NEW  "}.Matches(d))
	assert.True(t, DonorFilter{BloodGroup: "b+"}.Matches(d))
	assert.True(t, DonorFilter{City: "Delhi", BloodGroup: "B+"}.Matches(d))

	assert.False(t, DonorFilter{City: "Mumbai"}.Matches(d))
	assert.False(t, DonorFilter{BloodGroup: "B-"}.Matches(d))
	assert.False(t, DonorFilter{City: "Delhi", BloodGroup: "O+"}.Matches(d))
}
