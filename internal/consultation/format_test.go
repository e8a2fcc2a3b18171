package consultation

import "testing"

func TestFormatTime24To12(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{
			in:       "00:00",
			expected: "12:00 AM",
		},
		{
			in:       "00:30",
			expected: "12:30 AM",
		},
		{
			in:       "09:05",
			expected: "9:05 AM",
		},
		{
			in:       "11:59",
			expected: "11:59 AM",
		},
		{
			in:       "12:00",
			expected: "12:00 PM",
		},
		{
			in:       "13:30",
			expected: "1:30 PM",
		},
		{
			in:       "23:45",
			expected: "11:45 PM",
		},
		{
			in:       "",
			expected: "",
		},
	}

	for _, c := range cases {
		got := FormatTime24To12(c.in)
		if got != c.expected {
			t.Fatalf("FormatTime24To12(%q): expected %q, got %q", c.in, c.expected, got)
		}
	}
}
