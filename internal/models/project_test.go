// internal/models/project_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		name    string
		goal    float64
		current float64
		want    float64
	}{
		{"empty project", 1000, 0, 0},
		{"quarter funded", 1000, 250, 25},
		{"fully funded", 1000, 1000, 100},
		{"overshoot clamps at 100", 1000, 1500, 100},
		{"zero goal never divides", 0, 500, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Project{GoalAmount: tc.goal, CurrentAmount: tc.current}
			assert.InDelta(t, tc.want, p.ProgressPercentage(), 0.001)
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	ended := Project{EndDate: now.Add(-time.Hour)}
	assert.Equal(t, 0, ended.DaysRemaining(now))

	endingNow := Project{EndDate: now}
	assert.Equal(t, 0, endingNow.DaysRemaining(now))

	// A partial day still counts as one
	halfDay := Project{EndDate: now.Add(12 * time.Hour)}
	assert.Equal(t, 1, halfDay.DaysRemaining(now))

	month := Project{EndDate: now.Add(30 * 24 * time.Hour)}
	assert.Equal(t, 30, month.DaysRemaining(now))
}

func TestCoverImageURL(t *testing.T) {
	p := Project{}
	assert.Empty(t, p.CoverImageURL())

	p.Media = []ProjectMedia{
		{URL: "https://cdn.example.com/clipe.mp4", MediaType: MediaTypeVideo},
		{URL: "https://cdn.example.com/capa.jpg", MediaType: MediaTypeImage},
		{URL: "https://cdn.example.com/outra.jpg", MediaType: MediaTypeImage},
	}
	assert.Equal(t, "https://cdn.example.com/capa.jpg", p.CoverImageURL())
}

func TestUserPasswordRoundTrip(t *testing.T) {
	u := User{}
	assert.NoError(t, u.SetPassword("SenhaForte123"))
	assert.NotEqual(t, "SenhaForte123", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("SenhaForte123"))
	assert.Error(t, u.CheckPassword("outra-senha"))
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Maria", LastName: "Silva"}
	assert.Equal(t, "Maria Silva", u.FullName())
}
