package paint

import "testing"

func TestParseLineNumberFormat(t *testing.T) {
	cases := []struct {
		tmpl          string
		before, after string
	}{
		{"%ln⋮", "", "⋮"},
		{"%ln│ ", "", "│ "},
		{"|%ln|", "|", "|"},
		{"%ln", "", ""},
	}
	for _, tc := range cases {
		f, err := ParseLineNumberFormat(tc.tmpl)
		if err != nil {
			t.Errorf("ParseLineNumberFormat(%q): %v", tc.tmpl, err)
			continue
		}
		if f.Before != tc.before || f.After != tc.after {
			t.Errorf("ParseLineNumberFormat(%q) = {%q, %q}, want {%q, %q}",
				tc.tmpl, f.Before, f.After, tc.before, tc.after)
		}
	}
}

func TestParseLineNumberFormat_Errors(t *testing.T) {
	for _, tmpl := range []string{"", "plain", "%ln%ln", "a%lnb%lnc"} {
		if _, err := ParseLineNumberFormat(tmpl); err == nil {
			t.Errorf("ParseLineNumberFormat(%q) succeeded, want error", tmpl)
		}
	}
}

func TestComponents(t *testing.T) {
	f, err := ParseLineNumberFormat("|%ln|")
	if err != nil {
		t.Fatal(err)
	}

	n := 3
	before, number, after := f.Components(&n)
	if before != "|" || after != "|" {
		t.Errorf("literals = %q / %q", before, after)
	}
	if number != " 3  " {
		t.Errorf("number = %q, want %q", number, " 3  ")
	}

	// Numbers wider than the column are not truncated.
	wide := 12345
	if _, number, _ = f.Components(&wide); number != "12345" {
		t.Errorf("wide number = %q, want %q", number, "12345")
	}

	// Absent side gives a blank column, keeping the gutter aligned.
	if _, number, _ = f.Components(nil); number != "    " {
		t.Errorf("blank number = %q, want 4 spaces", number)
	}
}

func TestCenter(t *testing.T) {
	cases := []struct {
		s    string
		want string
	}{
		{"1", " 1  "},
		{"12", " 12 "},
		{"123", "123 "},
		{"1234", "1234"},
		{"12345", "12345"},
	}
	for _, tc := range cases {
		if got := center(tc.s, 4); got != tc.want {
			t.Errorf("center(%q, 4) = %q, want %q", tc.s, got, tc.want)
		}
	}
}
