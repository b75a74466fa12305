package toolfilter

import (
	"fmt"
	"sort"
	"strings"
)

// Tool represents an MCP tool for filtering purposes.
type Tool struct {
	Name        string
	Description string
}

// ParseToolList splits a comma-separated string into a deduplicated, trimmed
// list of names. Empty entries are removed and order is preserved (first
// occurrence wins on duplicates). It is used for tool lists and for module
// lists alike.
func ParseToolList(csv string) []string {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	seen := make(map[string]struct{})
	var result []string

	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	return result
}

// CheckNames returns an error for the first entry of names that is not in
// known. kind names the entries in the message ("module", "tool").
func CheckNames(kind string, names, known []string) error {
	valid := make(map[string]struct{}, len(known))
	for _, k := range known {
		valid[k] = struct{}{}
	}
	for _, name := range names {
		if _, ok := valid[name]; ok {
			continue
		}
		msg := fmt.Sprintf("unknown %s '%s'. Valid: %s", kind, name, strings.Join(known, ", "))
		if suggestion := SuggestTool(name, known); suggestion != "" {
			msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// FilterTools applies include or exclude filtering to a list of tools.
//
// Rules:
//   - If both include and exclude are non-empty, an error is returned.
//   - Include mode: only tools whose Name appears in include are kept.
//     Any include name that does not match a tool produces an error with a
//     suggestion when one is close (Levenshtein <= 3).
//   - Exclude mode: tools whose Name appears in exclude are removed.
//     If that leaves zero tools, an error is returned.
//   - If both slices are empty, all tools are returned unchanged.
func FilterTools(tools []Tool, include, exclude []string) ([]Tool, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("--include-tools and --exclude-tools cannot be used together")
	}

	if len(include) == 0 && len(exclude) == 0 {
		return tools, nil
	}

	byName := make(map[string]Tool, len(tools))
	available := make([]string, 0, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
		available = append(available, t.Name)
	}

	if len(include) > 0 {
		var result []Tool
		for _, name := range include {
			t, ok := byName[name]
			if !ok {
				msg := fmt.Sprintf("tool '%s' not found. Available tools: %s",
					name, strings.Join(available, ", "))
				if suggestion := SuggestTool(name, available); suggestion != "" {
					msg += fmt.Sprintf(" Did you mean '%s'?", suggestion)
				}
				return nil, fmt.Errorf("%s", msg)
			}
			result = append(result, t)
		}
		return result, nil
	}

	excludeSet := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excludeSet[name] = struct{}{}
	}

	var result []Tool
	for _, t := range tools {
		if _, skip := excludeSet[t.Name]; !skip {
			result = append(result, t)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("all tools excluded, nothing to serve")
	}

	return result, nil
}

// Search returns the tools whose name or description contains keyword,
// ignoring case, sorted by name.
func Search(tools []Tool, keyword string) []Tool {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	var result []Tool
	for _, t := range tools {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
