package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"AvisailYachts/internal/catalog"
	"AvisailYachts/internal/favorites"
	"AvisailYachts/internal/i18n"
	"AvisailYachts/internal/web"
)

type appDeps struct {
	favs      favorites.Store
	catalogDB web.Pinger
	registry  *prometheus.Registry
	token     string
	rate      int
}

func newAppTS(t *testing.T, d appDeps) *httptest.Server {
	t.Helper()

	store, err := catalog.LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	if d.favs == nil {
		d.favs = favorites.NewMemStore()
	}

	h := web.NewHandler(
		web.Deps{
			Catalog:   store,
			Bundle:    bundle,
			Favorites: d.favs,
			CatalogDB: d.catalogDB,
		},
		web.HTTPDeps{
			Log:                zap.NewNop(),
			Service:            "catalog",
			Registry:           d.registry,
			MetricsEnabled:     d.token != "",
			MetricsToken:       d.token,
			FavoritesRateLimit: d.rate,
		},
	)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	return v
}

func ids(vs []catalog.View) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestApp_CatalogHappyPath(t *testing.T) {
	ts := newAppTS(t, appDeps{})
	c := newClient(t)

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/yachts", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list status=%d body=%s", resp.StatusCode, string(raw))
		}
		all := decode[[]catalog.View](t, raw)
		if len(all) != 8 {
			t.Fatalf("len=%d", len(all))
		}
		if all[0].ID != "ay-001" || all[0].PriceLabel != "$1,250,000" {
			t.Fatalf("first=%s price=%s", all[0].ID, all[0].PriceLabel)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/yachts/featured", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("featured status=%d", resp.StatusCode)
		}
		got := strings.Join(ids(decode[[]catalog.View](t, raw)), ",")
		if got != "ay-001,ay-002,ay-004" {
			t.Fatalf("featured=%s", got)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/yachts/ay-004", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get status=%d", resp.StatusCode)
		}
		v := decode[catalog.View](t, raw)
		if v.PriceLabel != catalog.PriceOnRequest || v.HasPrice() {
			t.Fatalf("price_label=%q", v.PriceLabel)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/yachts/ay-001/related?limit=2", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("related status=%d", resp.StatusCode)
		}
		got := strings.Join(ids(decode[[]catalog.View](t, raw)), ",")
		if got != "ay-002,ay-008" {
			t.Fatalf("related=%s", got)
		}
	}
}

func TestApp_CatalogErrors(t *testing.T) {
	ts := newAppTS(t, appDeps{})
	c := newClient(t)

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/yachts/nope", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	e := decode[map[string]any](t, raw)
	if e["error"] != "not found" {
		t.Fatalf("body=%s", string(raw))
	}

	for _, q := range []string{"x", "-1", "25"} {
		resp, _ := doJSON(t, c, http.MethodGet, ts.URL+"/yachts/ay-001/related?limit="+q, nil, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("limit=%s status=%d", q, resp.StatusCode)
		}
	}

	resp, raw = doJSON(t, c, http.MethodGet, ts.URL+"/yachts/ay-001/related?limit=0", nil, nil)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("limit=0 status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, _ = doJSON(t, c, http.MethodGet, ts.URL+"/yachts/nope/related", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("related unknown status=%d", resp.StatusCode)
	}
}

func TestApp_Localization(t *testing.T) {
	ts := newAppTS(t, appDeps{})
	c := newClient(t)

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/i18n?hl=ar&prefix=favorites", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("i18n status=%d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Language") != "ar" {
		t.Fatalf("content-language=%q", resp.Header.Get("Content-Language"))
	}
	type i18nResp struct {
		Locale   string            `json:"locale"`
		Dir      string            `json:"dir"`
		RTL      bool              `json:"rtl"`
		Messages map[string]string `json:"messages"`
	}
	m := decode[i18nResp](t, raw)
	if m.Locale != "ar" || m.Dir != "rtl" || !m.RTL {
		t.Fatalf("i18n=%+v", m)
	}
	if _, ok := m.Messages["favorites.title"]; !ok {
		t.Fatalf("missing favorites.title: %v", m.Messages)
	}
	if _, ok := m.Messages["nav.collection"]; ok {
		t.Fatalf("prefix not applied")
	}

	// ?hl= is remembered, so the next request without it stays in Arabic.
	resp, raw = doJSON(t, c, http.MethodGet, ts.URL+"/yachts/ay-001", nil, map[string]string{
		"Accept-Language": "ja",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status=%d", resp.StatusCode)
	}
	v := decode[catalog.View](t, raw)
	if v.DisplayName != "Azimut 55" {
		t.Fatalf("display_name=%q", v.DisplayName)
	}

	fresh := newClient(t)
	_, raw = doJSON(t, fresh, http.MethodGet, ts.URL+"/yachts/ay-001", nil, map[string]string{
		"Accept-Language": "ja-JP,ja;q=0.9,en;q=0.5",
	})
	v = decode[catalog.View](t, raw)
	if v.DisplayName != "アジムット 55" {
		t.Fatalf("ja display_name=%q", v.DisplayName)
	}
}

func TestApp_FavoritesFlow(t *testing.T) {
	ts := newAppTS(t, appDeps{})
	c := newClient(t)

	type idsResp struct {
		IDs   []string `json:"ids"`
		Count int      `json:"count"`
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/favorites", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list status=%d body=%s", resp.StatusCode, string(raw))
		}
		l := decode[struct {
			Count   int    `json:"count"`
			Summary string `json:"summary"`
		}](t, raw)
		if l.Count != 0 || l.Summary != "No yachts saved yet" {
			t.Fatalf("empty list=%+v", l)
		}
	}

	for _, id := range []string{"ay-002", "ay-001", "ay-002"} {
		resp, raw := doJSON(t, c, http.MethodPut, ts.URL+"/favorites/"+id, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add %s status=%d body=%s", id, resp.StatusCode, string(raw))
		}
	}

	{
		resp, _ := doJSON(t, c, http.MethodPut, ts.URL+"/favorites/nope", nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("add unknown status=%d", resp.StatusCode)
		}
	}

	{
		_, raw := doJSON(t, c, http.MethodGet, ts.URL+"/favorites", nil, nil)
		l := decode[struct {
			IDs     []string       `json:"ids"`
			Count   int            `json:"count"`
			Summary string         `json:"summary"`
			Yachts  []catalog.View `json:"yachts"`
		}](t, raw)
		if strings.Join(l.IDs, ",") != "ay-002,ay-001" || l.Count != 2 {
			t.Fatalf("ids=%v count=%d", l.IDs, l.Count)
		}
		if l.Summary != "2 yachts saved" {
			t.Fatalf("summary=%q", l.Summary)
		}
		if got := strings.Join(ids(l.Yachts), ","); got != "ay-001,ay-002" {
			t.Fatalf("yachts=%s", got)
		}
		for _, v := range l.Yachts {
			if !v.Favorite {
				t.Fatalf("%s not marked favorite", v.ID)
			}
		}
	}

	{
		_, raw := doJSON(t, c, http.MethodGet, ts.URL+"/yachts/featured", nil, nil)
		for _, v := range decode[[]catalog.View](t, raw) {
			want := v.ID == "ay-001" || v.ID == "ay-002"
			if v.Favorite != want {
				t.Fatalf("%s favorite=%v", v.ID, v.Favorite)
			}
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/favorites/ay-001/toggle", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("toggle status=%d", resp.StatusCode)
		}
		tr := decode[struct {
			ID       string `json:"id"`
			Favorite bool   `json:"favorite"`
		}](t, raw)
		if tr.ID != "ay-001" || tr.Favorite {
			t.Fatalf("toggle=%+v", tr)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodDelete, ts.URL+"/favorites/ay-002", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("delete status=%d", resp.StatusCode)
		}
		if r := decode[idsResp](t, raw); r.Count != 0 {
			t.Fatalf("after delete=%+v", r)
		}
		resp, _ = doJSON(t, c, http.MethodDelete, ts.URL+"/favorites/ay-002", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("repeat delete status=%d", resp.StatusCode)
		}
	}

	// Another browser gets its own session.
	other := newClient(t)
	_, raw := doJSON(t, other, http.MethodGet, ts.URL+"/favorites", nil, nil)
	if r := decode[idsResp](t, raw); r.Count != 0 {
		t.Fatalf("sessions leaked: %+v", r)
	}
}

func TestApp_FavoritesRateLimit(t *testing.T) {
	ts := newAppTS(t, appDeps{rate: 2})
	c := newClient(t)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, c, http.MethodPost, ts.URL+"/favorites/ay-001/toggle", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("toggle %d status=%d", i, resp.StatusCode)
		}
	}
	resp, _ := doJSON(t, c, http.MethodPost, ts.URL+"/favorites/ay-001/toggle", nil, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	// Reads are not limited.
	resp, _ = doJSON(t, c, http.MethodGet, ts.URL+"/favorites", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status=%d", resp.StatusCode)
	}
}

type downStore struct{ favorites.Store }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func (downStore) Load(context.Context, string) ([]string, error) {
	return nil, errors.New("connection refused")
}

func TestApp_Readiness(t *testing.T) {
	c := newClient(t)

	ts := newAppTS(t, appDeps{})
	for _, p := range []string{"/healthz", "/readyz"} {
		resp, _ := doJSON(t, c, http.MethodGet, ts.URL+p, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", p, resp.StatusCode)
		}
	}

	down := newAppTS(t, appDeps{favs: downStore{}})
	resp, raw := doJSON(t, c, http.MethodGet, down.URL+"/readyz", nil, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}
	if e := decode[map[string]any](t, raw); e["error"] != "favorites not ready" {
		t.Fatalf("body=%s", string(raw))
	}

	// A favorites outage drops the marks but still serves the catalog.
	resp, _ = doJSON(t, c, http.MethodGet, down.URL+"/yachts", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("yachts status=%d", resp.StatusCode)
	}
	resp, _ = doJSON(t, c, http.MethodGet, down.URL+"/favorites", nil, nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("favorites status=%d", resp.StatusCode)
	}
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("dial tcp: i/o timeout") }

func TestApp_ReadinessPingsCatalogDatabase(t *testing.T) {
	c := newClient(t)
	ts := newAppTS(t, appDeps{catalogDB: downDB{}})

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/readyz", nil, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}
	if e := decode[map[string]any](t, raw); e["error"] != "catalog database not ready" {
		t.Fatalf("body=%s", string(raw))
	}

	// The catalog is in memory, so it keeps serving.
	resp, _ = doJSON(t, c, http.MethodGet, ts.URL+"/yachts", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("yachts status=%d", resp.StatusCode)
	}
}

func TestApp_Metrics(t *testing.T) {
	ts := newAppTS(t, appDeps{registry: prometheus.NewRegistry(), token: "s3cret"})
	c := newClient(t)

	doJSON(t, c, http.MethodPut, ts.URL+"/favorites/ay-001", nil, nil)
	doJSON(t, c, http.MethodGet, ts.URL+"/yachts/ay-001", nil, nil)

	resp, _ := doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated status=%d", resp.StatusCode)
	}

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{
		"Authorization": "Bearer s3cret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status=%d", resp.StatusCode)
	}
	body := string(raw)
	for _, want := range []string{
		`favorites_mutations_total{changed="true",op="add"} 1`,
		`path="/yachts/{id}"`,
		`locale="en"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %s", want)
		}
	}
}
