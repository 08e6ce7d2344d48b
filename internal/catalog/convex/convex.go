// Package convex talks to the popular-drinks functions of a Convex deployment
// over its HTTP API.
package convex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/vbonduro/drinklog/internal/domain"
)

const (
	fnGetAllDrinks      = "popularDrinks:getAllDrinks"
	fnGetDrinksByType   = "popularDrinks:getDrinksByType"
	fnGetDrinkByName    = "popularDrinks:getDrinkByName"
	fnAddDrink          = "popularDrinks:addDrink"
	fnUpdateDrinkByName = "popularDrinks:updateDrinkByName"
	fnSeedDrinks        = "seed:seedDrinks"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// ErrFunction is returned when the deployment reports a function error.
var ErrFunction = errors.New("convex: function failed")

// request mirrors the body accepted by /api/query and /api/mutation.
type request struct {
	Path   string         `json:"path"`
	Args   map[string]any `json:"args"`
	Format string         `json:"format"`
}

// Update lists the fields updateDrinkByName should change. Nil fields are
// left untouched.
type Update struct {
	ImageName         *string
	VolumeML          *float64
	Category          *domain.Category
	AlcoholPercentage *float64
	CaffeineMg        *float64
}

// SeedResult is returned by the seed mutation.
type SeedResult struct {
	Inserted int
	Updated  int
	Total    int
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) Name() string { return "convex" }

// Drinks returns every popular drink stored in the deployment.
func (c *Client) Drinks(ctx context.Context) ([]domain.CatalogDrink, error) {
	value, err := c.call(ctx, "query", fnGetAllDrinks, nil)
	if err != nil {
		return nil, err
	}
	return parseDrinks(value), nil
}

func (c *Client) DrinksByCategory(ctx context.Context, category domain.Category) ([]domain.CatalogDrink, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown drink category %q", category)
	}
	value, err := c.call(ctx, "query", fnGetDrinksByType, map[string]any{"drinkType": string(category)})
	if err != nil {
		return nil, err
	}
	return parseDrinks(value), nil
}

// DrinkByName returns the drink called name. ok is false when none exists.
func (c *Client) DrinkByName(ctx context.Context, name string) (d domain.CatalogDrink, ok bool, err error) {
	value, err := c.call(ctx, "query", fnGetDrinkByName, map[string]any{"name": name})
	if err != nil {
		return domain.CatalogDrink{}, false, err
	}
	if !value.IsObject() {
		return domain.CatalogDrink{}, false, nil
	}
	d, ok = parseDrink(value)
	return d, ok, nil
}

// AddDrink inserts d and returns its document ID.
func (c *Client) AddDrink(ctx context.Context, d domain.CatalogDrink) (string, error) {
	args := map[string]any{
		"name":      d.Name,
		"imageName": d.ImageName,
		"volume":    d.VolumeML,
		"drinkType": string(d.Category),
	}
	if d.AlcoholPercentage != nil {
		args["alcoholPercentage"] = *d.AlcoholPercentage
	}
	if d.CaffeineMg != nil {
		args["caffeineContent"] = *d.CaffeineMg
	}

	value, err := c.call(ctx, "mutation", fnAddDrink, args)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

// UpdateDrinkByName patches the drink called name and returns its ID.
func (c *Client) UpdateDrinkByName(ctx context.Context, name string, u Update) (string, error) {
	args := map[string]any{"name": name}
	if u.ImageName != nil {
		args["imageName"] = *u.ImageName
	}
	if u.VolumeML != nil {
		args["volume"] = *u.VolumeML
	}
	if u.Category != nil {
		args["drinkType"] = string(*u.Category)
	}
	if u.AlcoholPercentage != nil {
		args["alcoholPercentage"] = *u.AlcoholPercentage
	}
	if u.CaffeineMg != nil {
		args["caffeineContent"] = *u.CaffeineMg
	}

	value, err := c.call(ctx, "mutation", fnUpdateDrinkByName, args)
	if err != nil {
		return "", err
	}
	return value.Get("id").String(), nil
}

// Seed runs the deployment's seed mutation, which upserts its default drinks.
func (c *Client) Seed(ctx context.Context) (SeedResult, error) {
	value, err := c.call(ctx, "mutation", fnSeedDrinks, nil)
	if err != nil {
		return SeedResult{}, err
	}
	return SeedResult{
		Inserted: int(value.Get("inserted").Int()),
		Updated:  int(value.Get("updated").Int()),
		Total:    int(value.Get("total").Int()),
	}, nil
}

// call invokes a Convex function and returns the "value" of a successful
// response envelope.
func (c *Client) call(ctx context.Context, kind, path string, args map[string]any) (gjson.Result, error) {
	if args == nil {
		args = map[string]any{}
	}
	payload, err := json.Marshal(request{Path: path, Args: args, Format: "json"})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/"+kind, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to call convex: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("convex returned status %d with a non-JSON body", resp.StatusCode)
	}

	envelope := gjson.ParseBytes(body)
	switch envelope.Get("status").String() {
	case "success":
		return envelope.Get("value"), nil
	case "error":
		return gjson.Result{}, fmt.Errorf("%w: %s: %s", ErrFunction, path, envelope.Get("errorMessage").String())
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("convex returned status %d", resp.StatusCode)
	}
	return gjson.Result{}, fmt.Errorf("convex returned an unrecognised response for %s", path)
}

func parseDrinks(value gjson.Result) []domain.CatalogDrink {
	drinks := make([]domain.CatalogDrink, 0)
	for _, r := range value.Array() {
		if d, ok := parseDrink(r); ok {
			drinks = append(drinks, d)
		}
	}
	return drinks
}

// parseDrink maps one popularDrinks document. Documents without a name, a
// positive volume or a known type are skipped.
func parseDrink(r gjson.Result) (domain.CatalogDrink, bool) {
	d := domain.CatalogDrink{
		ID:        r.Get("_id").String(),
		Name:      r.Get("name").String(),
		ImageName: r.Get("imageName").String(),
		VolumeML:  r.Get("volume").Float(),
		Category:  domain.Category(r.Get("drinkType").String()),
	}
	if d.Name == "" || d.VolumeML <= 0 || !d.Category.Valid() {
		return domain.CatalogDrink{}, false
	}
	if v := r.Get("alcoholPercentage"); v.Exists() && v.Type == gjson.Number {
		f := v.Float()
		d.AlcoholPercentage = &f
	}
	if v := r.Get("caffeineContent"); v.Exists() && v.Type == gjson.Number {
		f := v.Float()
		d.CaffeineMg = &f
	}
	return d, true
}
