package funnel

import (
	"testing"

	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/eleven-am/insight-backend/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visit(id string, pages ...string) *recording.Session {
	s := &recording.Session{ID: id}
	for i, p := range pages {
		s.Events = append(s.Events, recording.Event{
			Type:      recording.EventNavigation,
			Timestamp: int64(i * 1000),
			URL:       p,
		})
	}
	return s
}

func TestReached(t *testing.T) {
	pages := []string{"/", "/products", "/cart", "/checkout"}
	tests := []struct {
		name string
		seq  []string
		want int
	}{
		{"empty", nil, 0},
		{"wrong start", []string{"/products", "/cart"}, 0},
		{"full", []string{"/", "/products", "/cart", "/checkout"}, 4},
		{"gaps allowed", []string{"/", "/about", "/products", "/pricing", "/cart"}, 3},
		{"out of order", []string{"/", "/cart", "/products"}, 2},
		{"revisits", []string{"/", "/products", "/", "/products", "/cart", "/checkout", "/"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reached(tt.seq, pages))
		})
	}
}

func TestCompute(t *testing.T) {
	f := &Funnel{
		Name:      "Checkout",
		Pages:     shared.StringSlice{"/", "/products", "/cart", "/checkout"},
		StepNames: shared.StringSlice{"Landing", "", "Cart", "Checkout"},
	}
	sessions := []*recording.Session{
		visit("a", "/", "/products", "/cart", "/checkout"),
		visit("b", "/", "/products", "/cart"),
		visit("c", "/", "/products"),
		visit("d", "/", "/pricing"),
		visit("e", "/about"),
	}

	steps := Compute(f, sessions)
	require.Len(t, steps, 4)

	assert.Equal(t, "Landing", steps[0].Name)
	assert.Equal(t, "/products", steps[1].Name)

	assert.Equal(t, []int{4, 3, 2, 1}, []int{steps[0].Users, steps[1].Users, steps[2].Users, steps[3].Users})
	assert.Equal(t, 100.0, steps[0].ConversionRate)
	assert.Equal(t, 75.0, steps[1].ConversionRate)
	assert.Equal(t, 50.0, steps[2].ConversionRate)
	assert.Equal(t, 25.0, steps[3].ConversionRate)

	assert.Equal(t, 0.0, steps[0].DropoffRate)
	assert.Equal(t, 25.0, steps[1].DropoffRate)
	assert.Equal(t, 33.3, steps[2].DropoffRate)
	assert.Equal(t, 50.0, steps[3].DropoffRate)
}

func TestCompute_NoSessions(t *testing.T) {
	f := &Funnel{Name: "Signup", Pages: shared.StringSlice{"/pricing", "/signup"}}

	steps := Compute(f, nil)
	require.Len(t, steps, 2)
	for _, s := range steps {
		assert.Zero(t, s.Users)
		assert.Zero(t, s.ConversionRate)
		assert.Zero(t, s.DropoffRate)
	}
}
