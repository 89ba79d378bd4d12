package analysis

import "testing"

func TestSafeFloat(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "plain", input: "42", want: 42},
		{name: "decimal", input: "5.230", want: 5.23},
		{name: "thousands comma", input: "1,234.50", want: 1234.5},
		{name: "trailing percent", input: "15%", want: 15},
		{name: "internal space", input: "1 250", want: 1250},
		{name: "empty", input: "", want: 0},
		{name: "whitespace only", input: "   ", want: 0},
		{name: "nil", input: nil, want: 0},
		{name: "garbage", input: "n/a", want: 0},
		{name: "negative", input: "-3.5", want: -3.5},
		{name: "numeric value", input: 7.5, want: 7.5},
		{name: "integer value", input: 12, want: 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeFloat(tc.input); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestSafeInt(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  int
	}{
		{name: "thousands comma", input: "2,500", want: 2500},
		{name: "garbage", input: "abc", want: 0},
		{name: "truncates toward zero", input: "9.99", want: 9},
		{name: "negative truncates toward zero", input: "-9.99", want: -9},
		{name: "nil", input: nil, want: 0},
		{name: "nan", input: "nan", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeInt(tc.input); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}
