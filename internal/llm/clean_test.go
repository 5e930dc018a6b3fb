package llm

import "testing"

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n[1,2]\n```", `[1,2]`},
		{"uppercase lang", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"prose then fence", "Here you go:\n```json\n{\"a\":1}\n```\nHope that helps!", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"whitespace", "  \n {\"a\":1} \n ", `{"a":1}`},
		{"plain prose", "no json here", "no json here"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanJSON(tc.in); got != tc.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
