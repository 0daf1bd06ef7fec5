package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Luxe Machine", "luxe-machine"},
		{"mixed case and digits", "Drinkmate OmniFizz 1L", "drinkmate-omnifizz-1l"},
		{"punctuation collapses", "CO2 Refill (60L)!", "co2-refill-60l"},
		{"leading and trailing separators", " Starter Kit ", "starter-kit"},
		{"already a slug", "berry-blast", "berry-blast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
