package lokiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format shapes a successful response into tool output:
//   - text responses pass through,
//   - no-content responses become a success line unless Loki sent a body,
//   - JSON responses are filtered, unwrapped from the
//     {"status":"success","data":...} envelope and indented.
func Format(req Request, resp *Response) (string, error) {
	body := bytes.TrimSpace(resp.Body)

	switch req.Response {
	case ResponseText:
		if len(body) == 0 {
			return success(resp), nil
		}
		return string(resp.Body), nil

	case ResponseNoContent:
		if len(body) == 0 {
			return success(resp), nil
		}
		if !json.Valid(body) {
			return string(body), nil
		}
	}

	if len(body) == 0 {
		return success(resp), nil
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		// Some endpoints answer plain text despite a JSON classification.
		return string(body), nil
	}

	if req.Filter.Value != "" {
		doc = applyFilter(doc, req.Filter)
	}
	doc = unwrap(doc)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("lokiclient: encode response: %w", err)
	}
	return string(out), nil
}

func success(resp *Response) string {
	return fmt.Sprintf("Success: %s %s (HTTP %d)", resp.Method, resp.Path, resp.StatusCode)
}

// unwrap returns the data of a {"status":"success","data":...} envelope, or
// doc unchanged.
func unwrap(doc any) any {
	obj, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	data, ok := obj["data"]
	if !ok || obj["status"] != "success" {
		return doc
	}
	return data
}

// applyFilter keeps the entries of the list at f.Path that contain f.Value,
// ignoring case. Object entries are matched on f.LabelKey when set. A path
// that does not lead to a list leaves doc unchanged.
func applyFilter(doc any, f Filter) any {
	needle := strings.ToLower(f.Value)
	keep := func(entry any) bool {
		if obj, ok := entry.(map[string]any); ok && f.LabelKey != "" {
			v, ok := obj[f.LabelKey]
			return ok && strings.Contains(strings.ToLower(fmt.Sprint(v)), needle)
		}
		if s, ok := entry.(string); ok {
			return strings.Contains(strings.ToLower(s), needle)
		}
		b, _ := json.Marshal(entry)
		return strings.Contains(strings.ToLower(string(b)), needle)
	}

	return rewriteAt(doc, splitPath(f.Path), func(list []any) []any {
		kept := []any{}
		for _, entry := range list {
			if keep(entry) {
				kept = append(kept, entry)
			}
		}
		return kept
	})
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func rewriteAt(doc any, path []string, fn func([]any) []any) any {
	if len(path) == 0 {
		if list, ok := doc.([]any); ok {
			return fn(list)
		}
		return doc
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	child, ok := obj[path[0]]
	if !ok {
		return doc
	}
	obj[path[0]] = rewriteAt(child, path[1:], fn)
	return obj
}
