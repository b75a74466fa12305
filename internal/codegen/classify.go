package codegen

import "github.com/abl030/loki-mcp/internal/inventory"

// ResponseKind selects how the generated tool turns the Loki response into
// tool output.
type ResponseKind int

const (
	ResponseJSON ResponseKind = iota
	ResponseText
	ResponseNoContent
)

// BodyKind selects how non-path parameters are sent to Loki.
type BodyKind int

const (
	BodyNone BodyKind = iota // query string
	BodyJSON
	BodyForm
	BodyYAML
)

// textPaths are the endpoints that answer with plain text instead of JSON.
var textPaths = map[string]bool{
	"/ready":    true,
	"/metrics":  true,
	"/config":   true,
	"/services": true,
}

// bodyByID lists the endpoints whose parameters travel in a request body.
var bodyByID = map[string]BodyKind{
	"push":              BodyJSON,
	"set_log_level":     BodyForm,
	"create_rule_group": BodyYAML,
}

// ClassifyResponse picks the response handling of an endpoint. The text
// check wins over the no-content check.
func ClassifyResponse(ep inventory.Endpoint) ResponseKind {
	if textPaths[ep.Path] {
		return ResponseText
	}
	if (ep.Method == "POST" || ep.Method == "DELETE") && len(ep.ResponseFields) == 0 {
		return ResponseNoContent
	}
	return ResponseJSON
}

// ClassifyBody picks the request encoding of an endpoint.
func ClassifyBody(ep inventory.Endpoint) BodyKind {
	return bodyByID[ep.ID]
}

func (k ResponseKind) String() string {
	switch k {
	case ResponseText:
		return "text"
	case ResponseNoContent:
		return "no-content"
	default:
		return "json"
	}
}

// GoExpr is the runtime constant the generated code refers to.
func (k ResponseKind) GoExpr() string {
	switch k {
	case ResponseText:
		return "lokiclient.ResponseText"
	case ResponseNoContent:
		return "lokiclient.ResponseNoContent"
	default:
		return "lokiclient.ResponseJSON"
	}
}

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	case BodyYAML:
		return "yaml"
	default:
		return "none"
	}
}

// GoExpr is the runtime constant the generated code refers to.
func (k BodyKind) GoExpr() string {
	switch k {
	case BodyJSON:
		return "lokiclient.BodyJSON"
	case BodyForm:
		return "lokiclient.BodyForm"
	case BodyYAML:
		return "lokiclient.BodyYAML"
	default:
		return "lokiclient.BodyNone"
	}
}
