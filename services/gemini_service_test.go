package services

import "testing"

func TestCleanLLMResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"plain json",
			`{"a":1}`,
			`{"a":1}`,
		},
		{
			"fenced json",
			"```json\n{\"a\":1}\n```",
			`{"a":1}`,
		},
		{
			"bare fences",
			"```\n{\"a\":1}\n```",
			`{"a":1}`,
		},
		{
			"chatty preamble",
			`Sure! Here is your plan: {"a":1} Hope that helps.`,
			`{"a":1}`,
		},
		{
			"nested braces survive",
			`text {"a":{"b":2}} trailing`,
			`{"a":{"b":2}}`,
		},
		{
			"no json at all",
			"cannot comply",
			"cannot comply",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cleanLLMResponse(c.in); got != c.want {
				t.Errorf("cleanLLMResponse(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
