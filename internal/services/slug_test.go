package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"basic", "Supima T-Shirt", "supima-t-shirt"},
		{"multi word", "Premium Cotton Shirt", "premium-cotton-shirt"},
		{"symbol runs collapse", "Hello --- World!!!", "hello-world"},
		{"leading and trailing trimmed", "  Oversized Tee  ", "oversized-tee"},
		{"digits kept", "Tee 2024 Edition", "tee-2024-edition"},
		{"already clean", "plain", "plain"},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
