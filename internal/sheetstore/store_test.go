package sheetstore

import "testing"

func TestRecords(t *testing.T) {
	values := [][]string{
		{"Email", " Full Name ", "Score"},
		{"a@example.com", "Amy", "3"},
		{"b@example.com"},
	}
	rows := Records(values)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["email"] != "a@example.com" || rows[0]["full name"] != "Amy" || rows[0]["score"] != "3" {
		t.Fatalf("row 0 = %v", rows[0])
	}
	// Short rows read as empty cells, not missing keys.
	if v, ok := rows[1]["score"]; !ok || v != "" {
		t.Fatalf("short row score = (%q, %v), want empty present", v, ok)
	}

	if got := Records([][]string{{"only", "header"}}); got != nil {
		t.Fatalf("header-only table produced rows: %v", got)
	}
	if got := Records(nil); got != nil {
		t.Fatalf("empty table produced rows: %v", got)
	}
}

func TestHeaderMatches(t *testing.T) {
	cases := []struct {
		current  []string
		expected []string
		want     bool
	}{
		{[]string{"Email", "Name"}, []string{"email", "name"}, true},
		{[]string{" email ", "name"}, []string{"Email", "Name"}, true},
		{[]string{"email"}, []string{"email", "name"}, false},
		{[]string{"email", "title"}, []string{"email", "name"}, false},
		// Row 1 of a participant sheet carries the edit counter in Z1, so
		// the API returns trailing cells past the header. They must not
		// count as a mismatch.
		{
			[]string{
				"Timestamp", "Question ID", "Selected Answers", "Is Correct", "Score",
				"", "", "", "", "", "", "", "", "", "", "", "", "", "", "",
				"", "", "", "", "", "2",
			},
			[]string{"Timestamp", "Question ID", "Selected Answers", "Is Correct", "Score"},
			true,
		},
	}
	for _, tc := range cases {
		if got := headerMatches(tc.current, tc.expected); got != tc.want {
			t.Errorf("headerMatches(%v, %v) = %v, want %v", tc.current, tc.expected, got, tc.want)
		}
	}
}

func TestColumnName(t *testing.T) {
	cases := map[int]string{
		1:  "A",
		26: "Z",
		27: "AA",
		28: "AB",
		52: "AZ",
		53: "BA",
	}
	for col, want := range cases {
		if got := columnName(col); got != want {
			t.Errorf("columnName(%d) = %q, want %q", col, got, want)
		}
	}
}

func TestTableKey(t *testing.T) {
	a := Table{SpreadsheetID: "s1", Sheet: "Users"}
	b := Table{SpreadsheetID: "s1", Sheet: "Questions"}
	if a.key() == b.key() {
		t.Fatal("distinct sheets share a cache key")
	}
}
