package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"backend/cache"
)

const fatSecretURL = "https://platform.fatsecret.com/rest/server.api"

// FatSecretService searches the FatSecret food database through its legacy
// REST endpoint, which requires 2-legged OAuth 1.0 request signing.
type FatSecretService struct {
	consumerKey    string
	consumerSecret string
	client         *http.Client
}

func NewFatSecretService() *FatSecretService {
	return &FatSecretService{
		consumerKey:    os.Getenv("FATSECRET_CONSUMER_KEY"),
		consumerSecret: os.Getenv("FATSECRET_CONSUMER_SECRET"),
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

type fatSecretFood struct {
	FoodID          string `json:"food_id"`
	FoodName        string `json:"food_name"`
	FoodDescription string `json:"food_description"`
	FoodURL         string `json:"food_url"`
	FoodType        string `json:"food_type"`
}

// FoodSearchResult is one parsed hit with the nutrition scraped from the
// description text.
type FoodSearchResult struct {
	Name        string  `json:"name"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ServingSize string  `json:"servingSize"`
}

// oauthEncode percent-encodes per RFC 5849; Go's QueryEscape leaves the
// characters ! ' ( ) * bare and encodes spaces as +, both of which break the
// signature base string.
func oauthEncode(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, c := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, c, fmt.Sprintf("%%%X", c[0]))
	}
	return escaped
}

// signedQuery builds the sorted, signed query string for the given params.
func (s *FatSecretService) signedQuery(httpMethod string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, oauthEncode(k)+"="+oauthEncode(params[k]))
	}
	normalized := strings.Join(pairs, "&")

	baseString := strings.Join([]string{
		oauthEncode(httpMethod),
		oauthEncode(fatSecretURL),
		oauthEncode(normalized),
	}, "&")

	// Trailing & stands for the empty token secret of a 2-legged call.
	mac := hmac.New(sha1.New, []byte(oauthEncode(s.consumerSecret)+"&"))
	mac.Write([]byte(baseString))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	params["oauth_signature"] = signature

	keys = append(keys, "oauth_signature")
	sort.Strings(keys)
	final := make([]string, 0, len(keys))
	for _, k := range keys {
		final = append(final, oauthEncode(k)+"="+oauthEncode(params[k]))
	}
	return strings.Join(final, "&")
}

// SearchFoods queries foods.search and parses results. Responses are cached
// briefly since the same query is typed repeatedly while searching.
func (s *FatSecretService) SearchFoods(query string, maxResults int) ([]FoodSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []FoodSearchResult{}, nil
	}
	if s.consumerKey == "" || s.consumerSecret == "" {
		return nil, fmt.Errorf("fatsecret credentials not configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	cacheKey := fmt.Sprintf("food_search:%s:%d", strings.ToLower(query), maxResults)
	var cached []FoodSearchResult
	if cache.Client != nil {
		if err := cache.Get(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	params := map[string]string{
		"format":                 "json",
		"max_results":            strconv.Itoa(maxResults),
		"method":                 "foods.search",
		"oauth_consumer_key":     s.consumerKey,
		"oauth_nonce":            strconv.FormatInt(rand.Int63(), 36),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_version":          "1.0",
		"search_expression":      query,
	}

	finalURL := fatSecretURL + "?" + s.signedQuery("GET", params)

	resp, err := s.client.Get(finalURL)
	if err != nil {
		return nil, fmt.Errorf("fatsecret request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fatsecret read failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fatsecret API error %d: %s", resp.StatusCode, string(body))
	}

	// FatSecret reports logic errors inside a 200 OK body.
	var errResp struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
		return nil, fmt.Errorf("fatsecret error: %s", errResp.Error.Message)
	}

	// A single match comes back as an object instead of an array.
	var multi struct {
		Foods struct {
			Food []fatSecretFood `json:"food"`
		} `json:"foods"`
	}
	var foods []fatSecretFood
	if err := json.Unmarshal(body, &multi); err == nil && len(multi.Foods.Food) > 0 {
		foods = multi.Foods.Food
	} else {
		var single struct {
			Foods struct {
				Food fatSecretFood `json:"food"`
			} `json:"foods"`
		}
		if err := json.Unmarshal(body, &single); err == nil && single.Foods.Food.FoodID != "" {
			foods = []fatSecretFood{single.Foods.Food}
		}
	}

	results := make([]FoodSearchResult, 0, len(foods))
	for _, f := range foods {
		r := ParseFoodDescription(f.FoodDescription)
		r.Name = f.FoodName
		results = append(results, r)
	}

	if cache.Client != nil {
		_ = cache.Set(cacheKey, results, 10*time.Minute)
	}
	return results, nil
}

var (
	caloriesRe = regexp.MustCompile(`(?i)Calories:\s*(\d+)kcal`)
	fatRe      = regexp.MustCompile(`(?i)Fat:\s*([0-9.]+)g`)
	carbsRe    = regexp.MustCompile(`(?i)Carbs:\s*([0-9.]+)g`)
	proteinRe  = regexp.MustCompile(`(?i)Protein:\s*([0-9.]+)g`)
)

// ParseFoodDescription scrapes nutrition from FatSecret's description text,
// usually "Per 100g - Calories: 52kcal | Fat: 0.17g | Carbs: 13.81g |
// Protein: 0.26g".
func ParseFoodDescription(desc string) FoodSearchResult {
	r := FoodSearchResult{ServingSize: "Unknown serving"}
	if desc == "" {
		return r
	}

	if idx := strings.Index(desc, "-"); idx > 0 {
		r.ServingSize = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(desc[:idx]), "Per "))
	}

	if m := caloriesRe.FindStringSubmatch(desc); m != nil {
		r.Calories, _ = strconv.Atoi(m[1])
	}
	if m := fatRe.FindStringSubmatch(desc); m != nil {
		r.Fat, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := carbsRe.FindStringSubmatch(desc); m != nil {
		r.Carbs, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := proteinRe.FindStringSubmatch(desc); m != nil {
		r.Protein, _ = strconv.ParseFloat(m[1], 64)
	}
	return r
}
