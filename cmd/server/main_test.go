package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := []struct {
		secret string
		want   bool
	}{
		{secret: "short", want: true},
		{secret: "change-me-in-production-0123456789abcdef", want: true},
		{secret: "your-secret-key-0123456789abcdefghijklmnop", want: true},
		{secret: "b0c4a7e1f95d2e6389a1c0f7d4b2e8a6c3f1d9e7", want: false},
	}
	for _, tc := range cases {
		if got := isWeakSecret(tc.secret); got != tc.want {
			t.Fatalf("isWeakSecret(%q)=%v want %v", tc.secret, got, tc.want)
		}
	}
}
