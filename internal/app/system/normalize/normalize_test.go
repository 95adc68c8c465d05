package normalize

import "testing"

func TestHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"shop.example.com", "shop.example.com"},
		{"Shop.Example.COM", "shop.example.com"},
		{"  shop.example.com  ", "shop.example.com"},
		{"shop.example.com:8080", "shop.example.com"},
		{"localhost:3000", "localhost"},
		{"[::1]:8080", "::1"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Host(tt.input); got != tt.want {
				t.Errorf("Host(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"summer-sale", "summer-sale"},
		{"Summer-Sale", "summer-sale"},
		{"  summer-sale ", "summer-sale"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"summer-sale", true},
		{"a", true},
		{"item-2024", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"UPPER", false},
		{"spaces here", false},
		{"unicode-café", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidSlug(tt.input); got != tt.want {
				t.Errorf("ValidSlug(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
