package services

import (
	"strings"
	"testing"
)

func TestOauthEncode(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"it's!", "it%27s%21"},
		{"(1*2)", "%281%2A2%29"},
		{"safe-_.~", "safe-_.~"},
		{"q=v&x", "q%3Dv%26x"},
	}
	for _, c := range cases {
		if got := oauthEncode(c.in); got != c.want {
			t.Errorf("oauthEncode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSignedQueryIsDeterministic(t *testing.T) {
	s := &FatSecretService{consumerKey: "key", consumerSecret: "secret"}

	params := func() map[string]string {
		return map[string]string{
			"method":                 "foods.search",
			"search_expression":      "green apple",
			"oauth_consumer_key":     "key",
			"oauth_nonce":            "fixed-nonce",
			"oauth_timestamp":        "1700000000",
			"oauth_signature_method": "HMAC-SHA1",
			"oauth_version":          "1.0",
			"format":                 "json",
		}
	}

	q1 := s.signedQuery("GET", params())
	q2 := s.signedQuery("GET", params())
	if q1 != q2 {
		t.Errorf("same inputs produced different queries:\n%s\n%s", q1, q2)
	}
	if !strings.Contains(q1, "oauth_signature=") {
		t.Error("signature missing from query")
	}
	if !strings.Contains(q1, "search_expression=green%20apple") {
		t.Errorf("space not percent-encoded: %s", q1)
	}

	// parameters must come out sorted for the signature to verify
	if strings.Index(q1, "format=") > strings.Index(q1, "method=") {
		t.Errorf("parameters not sorted: %s", q1)
	}
}

func TestParseFoodDescription(t *testing.T) {
	desc := "Per 100g - Calories: 52kcal | Fat: 0.17g | Carbs: 13.81g | Protein: 0.26g"
	r := ParseFoodDescription(desc)

	if r.Calories != 52 {
		t.Errorf("calories = %d, want 52", r.Calories)
	}
	if !almostEqual(r.Fat, 0.17) || !almostEqual(r.Carbs, 13.81) || !almostEqual(r.Protein, 0.26) {
		t.Errorf("macros = %v/%v/%v", r.Fat, r.Carbs, r.Protein)
	}
	if r.ServingSize != "100g" {
		t.Errorf("serving = %q, want %q", r.ServingSize, "100g")
	}
}

func TestParseFoodDescriptionDegraded(t *testing.T) {
	r := ParseFoodDescription("")
	if r.Calories != 0 || r.ServingSize != "Unknown serving" {
		t.Errorf("empty description: %+v", r)
	}

	r = ParseFoodDescription("Per 1 cup - Calories: 240kcal")
	if r.Calories != 240 || r.ServingSize != "1 cup" {
		t.Errorf("partial description: %+v", r)
	}
	if r.Fat != 0 || r.Carbs != 0 || r.Protein != 0 {
		t.Errorf("missing macros should stay zero: %+v", r)
	}
}

func TestSearchFoodsRequiresCredentials(t *testing.T) {
	s := &FatSecretService{}
	if _, err := s.SearchFoods("apple", 5); err == nil {
		t.Error("missing credentials should error")
	}

	results, err := s.SearchFoods("   ", 5)
	if err != nil {
		t.Fatalf("blank query: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("blank query should return nothing, got %d", len(results))
	}
}
