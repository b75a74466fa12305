package lokiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ns(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func TestParseRelative(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"30s", 30 * time.Second, true},
		{"30m", 30 * time.Minute, true},
		{"1h", time.Hour, true},
		{"1h30m", 90 * time.Minute, true},
		{"7d", 7 * 24 * time.Hour, true},
		{"2w", 14 * 24 * time.Hour, true},
		{"0", 0, false},
		{"", 0, false},
		{"now", 0, false},
		{"-1h", 0, false},
		{"1700000000000000000", 0, false},
		{"2024-01-01T00:00:00Z", 0, false},
		{"1x", 0, false},
		{"100000d", 100000 * 24 * time.Hour, true},
		{"200000d", 0, false},
		{"20000w", 0, false},
		{"99999999999999999999d", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseRelative(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseRelative(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseRelativeProperties(t *testing.T) {
	units := map[string]time.Duration{
		"s": time.Second, "m": time.Minute, "h": time.Hour,
		"d": 24 * time.Hour, "w": 7 * 24 * time.Hour,
	}
	properties := gopter.NewProperties(nil)
	properties.Property("n<unit> is n times the unit", prop.ForAll(
		func(n int, unit string) bool {
			d, ok := ParseRelative(fmt.Sprintf("%d%s", n, unit))
			return ok && d == time.Duration(n)*units[unit]
		},
		gen.IntRange(0, 10000),
		gen.OneConstOf("s", "m", "h", "d", "w"),
	))
	properties.TestingRun(t)
}

func TestEncodeQuery(t *testing.T) {
	req := Request{
		Method: "GET",
		Path:   "/loki/api/v1/query_range",
		Params: Params{
			{Name: "query", Value: `{host="web-1"}`},
			{Name: "start", Value: "1h"},
			{Name: "end", Value: ""},
			{Name: "limit", Value: 100},
			{Name: "step", Value: ""},
			{Name: "direction", Value: "backward"},
		},
	}
	enc, err := encode(req, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "/loki/api/v1/query_range", enc.path)
	assert.Nil(t, enc.body)
	assert.Equal(t, url.Values{
		"query":     {`{host="web-1"}`},
		"start":     {ns(fixedNow.Add(-time.Hour))},
		"limit":     {"100"},
		"direction": {"backward"},
	}, enc.query)
}

func TestEncodeTimes(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"7d", ns(fixedNow.Add(-7 * 24 * time.Hour))},
		{"now", ns(fixedNow)},
		{"2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z"},
		{"1700000000000000000", "1700000000000000000"},
	}
	for _, tt := range tests {
		enc, err := encode(Request{Path: "/q", Params: Params{{Name: "time", Value: tt.value}}}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, tt.want, enc.query.Get("time"), tt.value)
	}

	// Only start, end and time are treated as times.
	enc, err := encode(Request{Path: "/q", Params: Params{{Name: "step", Value: "1h"}}}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "1h", enc.query.Get("step"))
}

func TestEncodePathParams(t *testing.T) {
	req := Request{
		Path: "/loki/api/v1/rules/{namespace}/{group}",
		Params: Params{
			{Name: "namespace", Value: "team a", InPath: true},
			{Name: "group", Value: "errors/5xx", InPath: true},
		},
	}
	enc, err := encode(req, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "/loki/api/v1/rules/team%20a/errors%2F5xx", enc.path)
	assert.Empty(t, enc.query)

	req.Params[1].Value = ""
	_, err = encode(req, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing path parameter "group"`)

	_, err = encode(Request{Path: "/label/{name}/values"}, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved placeholder")
}

func TestEncodeListAndScalars(t *testing.T) {
	req := Request{
		Path: "/x",
		Params: Params{
			{Name: "match[]", Value: []any{`{a="1"}`, `{b="2"}`}},
			{Name: "force", Value: false},
			{Name: "ratio", Value: 0.5},
			{Name: "unset", Value: []any(nil)},
			{Name: "nothing", Value: nil},
		},
	}
	enc, err := encode(req, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []string{`{a="1"}`, `{b="2"}`}, enc.query["match[]"])
	assert.Equal(t, "false", enc.query.Get("force"))
	assert.Equal(t, "0.5", enc.query.Get("ratio"))
	assert.NotContains(t, enc.query, "unset")
	assert.NotContains(t, enc.query, "nothing")
}

func TestEncodeOmitZero(t *testing.T) {
	req := Request{
		Path: "/x",
		Params: Params{
			{Name: "limit", Value: 0, OmitZero: true},
			{Name: "step", Value: 0.0, OmitZero: true},
			{Name: "flush", Value: false, OmitZero: true},
			{Name: "since", Value: 5, OmitZero: true},
			{Name: "force", Value: true, OmitZero: true},
			{Name: "offset", Value: 0},
		},
	}
	enc, err := encode(req, fixedNow)
	require.NoError(t, err)
	assert.NotContains(t, enc.query, "limit")
	assert.NotContains(t, enc.query, "step")
	assert.NotContains(t, enc.query, "flush")
	assert.Equal(t, "5", enc.query.Get("since"))
	assert.Equal(t, "true", enc.query.Get("force"))
	assert.Equal(t, "0", enc.query.Get("offset"))
}

func TestEncodeOverflowingRelativeTime(t *testing.T) {
	req := Request{Path: "/x", Params: Params{{Name: "start", Value: "200000d"}}}
	enc, err := encode(req, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "200000d", enc.query.Get("start"))
}

func TestEncodeJSONBody(t *testing.T) {
	streams := []any{map[string]any{
		"stream": map[string]any{"host": "web-1"},
		"values": []any{[]any{"1700000000000000000", "hello"}},
	}}
	enc, err := encode(Request{Method: "POST", Path: "/loki/api/v1/push", Body: BodyJSON, Params: Params{{Name: "streams", Value: streams}}}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "application/json", enc.contentType)
	assert.Empty(t, enc.query)
	var got map[string]any
	require.NoError(t, json.Unmarshal(enc.body, &got))
	assert.Equal(t, map[string]any{"streams": streams}, got)
}

func TestEncodeFormBody(t *testing.T) {
	enc, err := encode(Request{Method: "POST", Path: "/log_level", Body: BodyForm, Params: Params{{Name: "log_level", Value: "debug"}}}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", enc.contentType)
	assert.Equal(t, "log_level=debug", string(enc.body))
	assert.Empty(t, enc.query)
}

func TestEncodeYAMLBody(t *testing.T) {
	group := "name: errors\nrules:\n  - alert: HighErrors\n    expr: sum(rate({app=\"x\"} |= \"error\" [5m])) > 10\n"
	req := Request{
		Method: "POST",
		Path:   "/loki/api/v1/rules/{namespace}",
		Body:   BodyYAML,
		Params: Params{
			{Name: "namespace", Value: "team-a", InPath: true},
			{Name: "rule_group", Value: group},
		},
	}
	enc, err := encode(req, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "/loki/api/v1/rules/team-a", enc.path)
	assert.Equal(t, "application/yaml", enc.contentType)
	assert.Equal(t, group, string(enc.body))
	assert.Empty(t, enc.query)

	req.Params[1].Value = "rules: []"
	_, err = encode(req, fixedNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRuleGroup))

	req.Params[1].Value = ""
	_, err = encode(req, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a YAML body")
}

func TestValidateRuleGroup(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"valid alert", "name: g\nrules:\n  - alert: A\n    expr: up == 0\n", ""},
		{"valid record", "name: g\ninterval: 1m\nrules:\n  - record: r\n    expr: sum(x)\n", ""},
		{"not yaml", "name: [", "invalid rule group"},
		{"missing name", "rules:\n  - alert: A\n    expr: x\n", "missing name"},
		{"no rules", "name: g\n", `group "g" has no rules`},
		{"missing expr", "name: g\nrules:\n  - alert: A\n", "rules[0]: missing expr"},
		{"neither", "name: g\nrules:\n  - expr: x\n", "needs alert or record"},
		{"both", "name: g\nrules:\n  - alert: A\n    record: r\n    expr: x\n", "exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRuleGroup(tt.doc)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRuleGroup))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
