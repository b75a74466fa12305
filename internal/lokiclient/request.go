package lokiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BodyKind selects how non-path parameters are sent.
type BodyKind int

const (
	BodyNone BodyKind = iota // query string
	BodyJSON
	BodyForm
	BodyYAML
)

// ResponseKind selects how the response body becomes tool output.
type ResponseKind int

const (
	ResponseJSON ResponseKind = iota
	ResponseText
	ResponseNoContent
)

// Param is one request parameter.
type Param struct {
	Name     string // Wire name
	Value    any
	InPath   bool // Substituted into the {Name} placeholder of the path
	OmitZero bool // A zero number or false is not sent
}

// Params is an ordered parameter list.
type Params []Param

// Filter selects list entries of a JSON response on the client side.
type Filter struct {
	Path     string // Dot-separated location of the list (e.g., "data")
	LabelKey string // Match this key of object entries instead of the whole entry
	Value    string // Empty disables filtering
}

// Request is one Loki API call.
type Request struct {
	Method   string
	Path     string // May contain {name} placeholders
	Body     BodyKind
	Response ResponseKind
	Filter   Filter
	Params   Params
}

// timeParams are converted from relative durations to Unix nanoseconds.
var timeParams = map[string]bool{"start": true, "end": true, "time": true}

var relativeRe = regexp.MustCompile(`^(\d+)([dw])$`)

// ParseRelative parses a relative time such as "30m", "1h", "7d" or "2w".
func ParseRelative(s string) (time.Duration, bool) {
	if m := relativeRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		unit := 24 * time.Hour
		if m[2] == "w" {
			unit *= 7
		}
		if int64(n) > math.MaxInt64/int64(unit) {
			return 0, false
		}
		return time.Duration(n) * unit, true
	}
	if s == "" || s[0] < '0' || s[0] > '9' || !strings.ContainsAny(s[len(s)-1:], "smh") {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// resolveTime turns "now" and relative durations into Unix nanoseconds
// before now. Other values (RFC3339, Unix timestamps) pass through.
func resolveTime(v string, now time.Time) string {
	if v == "now" {
		return strconv.FormatInt(now.UnixNano(), 10)
	}
	if d, ok := ParseRelative(v); ok {
		return strconv.FormatInt(now.Add(-d).UnixNano(), 10)
	}
	return v
}

// skip reports whether p carries no value and must not be sent.
func skip(p Param) bool {
	switch x := p.Value.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []any:
		return x == nil
	case int:
		return p.OmitZero && x == 0
	case float64:
		return p.OmitZero && x == 0
	case bool:
		return p.OmitZero && !x
	}
	return false
}

// text renders a scalar parameter value for a query string or form.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// encoded is a request ready to send.
type encoded struct {
	path        string // Resolved path, placeholders substituted
	query       url.Values
	body        []byte
	contentType string
}

func (e *encoded) reader() io.Reader {
	if e.body == nil {
		return nil
	}
	return bytes.NewReader(e.body)
}

// encode resolves the path placeholders and places the remaining
// parameters according to the body kind.
func encode(req Request, now time.Time) (*encoded, error) {
	e := &encoded{path: req.Path, query: url.Values{}}

	var rest Params
	for _, p := range req.Params {
		if !p.InPath {
			if skip(p) {
				continue
			}
			if s, ok := p.Value.(string); ok && timeParams[p.Name] {
				p.Value = resolveTime(s, now)
			}
			rest = append(rest, p)
			continue
		}
		v := text(p.Value)
		if skip(p) || v == "" {
			return nil, fmt.Errorf("lokiclient: missing path parameter %q", p.Name)
		}
		e.path = strings.ReplaceAll(e.path, "{"+p.Name+"}", url.PathEscape(v))
	}
	if i := strings.IndexByte(e.path, '{'); i >= 0 {
		return nil, fmt.Errorf("lokiclient: unresolved placeholder in %s", e.path)
	}

	switch req.Body {
	case BodyJSON:
		obj := make(map[string]any, len(rest))
		for _, p := range rest {
			obj[p.Name] = p.Value
		}
		b, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("lokiclient: encode JSON body: %w", err)
		}
		e.body, e.contentType = b, "application/json"

	case BodyForm:
		form := url.Values{}
		addValues(form, rest)
		e.body, e.contentType = []byte(form.Encode()), "application/x-www-form-urlencoded"

	case BodyYAML:
		for i, p := range rest {
			s, ok := p.Value.(string)
			if !ok {
				continue
			}
			if err := ValidateRuleGroup(s); err != nil {
				return nil, err
			}
			e.body, e.contentType = []byte(s), "application/yaml"
			rest = append(rest[:i:i], rest[i+1:]...)
			break
		}
		if e.body == nil {
			return nil, fmt.Errorf("lokiclient: %s %s needs a YAML body", req.Method, req.Path)
		}
		addValues(e.query, rest)

	default:
		addValues(e.query, rest)
	}
	return e, nil
}

func addValues(vals url.Values, params Params) {
	for _, p := range params {
		if list, ok := p.Value.([]any); ok {
			for _, item := range list {
				vals.Add(p.Name, text(item))
			}
			continue
		}
		vals.Add(p.Name, text(p.Value))
	}
}
