package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abl030/loki-mcp/internal/lokiclient"
	"github.com/abl030/loki-mcp/internal/toolfilter"
)

// issueRepo receives the reports prepared by loki_report_issue.
const issueRepo = "abl030/loki-mcp"

// errorPattern selects error lines for loki_error_summary and
// loki_compare_hosts.
const errorPattern = `(?i)(error|exception|fatal|panic|fail)`

// logLine is one entry of a streams result.
type logLine struct {
	Time   time.Time
	Labels map[string]string
	Line   string
}

// streamsResult is the data of a log query.
type streamsResult struct {
	ResultType string `json:"resultType"`
	Result     []struct {
		Stream map[string]string `json:"stream"`
		Values [][2]string       `json:"values"`
	} `json:"result"`
}

// vectorResult is the data of an instant metric query or a volume query.
type vectorResult struct {
	Result []struct {
		Metric map[string]string `json:"metric"`
		Value  [2]any            `json:"value"`
	} `json:"result"`
}

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

// fetch sends req and decodes the data of the answer into T.
func fetch[T any](ctx context.Context, s *Server, tool string, req lokiclient.Request) (T, error) {
	var env envelope[T]
	resp, err := s.do(ctx, tool, req)
	if err != nil {
		return env.Data, err
	}
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return env.Data, fmt.Errorf("decode %s response: %w", req.Path, err)
	}
	return env.Data, nil
}

// selector builds a stream selector from optional label values.
func selector(labels ...[2]string) string {
	var matchers []string
	for _, kv := range labels {
		if kv[1] != "" {
			matchers = append(matchers, kv[0]+"="+strconv.Quote(kv[1]))
		}
	}
	if len(matchers) == 0 {
		return `{host=~".+"}`
	}
	return "{" + strings.Join(matchers, ", ") + "}"
}

func (s *Server) queryLines(ctx context.Context, tool, query, start, end string, limit int) ([]logLine, error) {
	data, err := fetch[streamsResult](ctx, s, tool, lokiclient.Request{
		Method: http.MethodGet,
		Path:   "/loki/api/v1/query_range",
		Params: lokiclient.Params{
			{Name: "query", Value: query},
			{Name: "start", Value: start},
			{Name: "end", Value: end},
			{Name: "limit", Value: limit},
			{Name: "direction", Value: "backward"},
		},
	})
	if err != nil {
		return nil, err
	}

	var lines []logLine
	for _, stream := range data.Result {
		for _, v := range stream.Values {
			ns, _ := strconv.ParseInt(v[0], 10, 64)
			lines = append(lines, logLine{Time: time.Unix(0, ns).UTC(), Labels: stream.Stream, Line: v[1]})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Time.After(lines[j].Time) })
	return lines, nil
}

func (s *Server) searchLogs(ctx context.Context, args lokiSearchLogsArgs) (string, error) {
	query := selector([2]string{"host", args.Host}, [2]string{"container", args.Container})
	if args.Pattern != "" {
		query += " |~ " + strconv.Quote("(?i)"+args.Pattern)
	}

	lines, err := s.queryLines(ctx, "loki_search_logs", query, args.Start, args.End, args.Limit)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No log lines matched %s since %s.", query, args.Start), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d line(s) for %s:\n\n", len(lines), query)
	for _, l := range lines {
		fmt.Fprintf(&b, "%s [%s] %s\n", l.Time.Format(time.RFC3339), streamName(l.Labels), l.Line)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// streamName is the short label summary shown next to a line.
func streamName(labels map[string]string) string {
	var parts []string
	for _, k := range []string{"host", "container", "job"} {
		if v := labels[k]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}

var digitsRe = regexp.MustCompile(`\d+`)

// messageKey groups error lines that differ only in numbers.
func messageKey(line string) string {
	key, _ := clip(digitsRe.ReplaceAllString(strings.TrimSpace(line), "N"), 120)
	return key
}

// clip cuts s to at most n runes and reports whether anything was cut.
func clip(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	r := []rune(s)
	return string(r[:n]), true
}

type counted struct {
	Key   string
	Count int
}

func topCounts(counts map[string]int, n int) []counted {
	out := make([]counted, 0, len(counts))
	for k, c := range counts {
		out = append(out, counted{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *Server) errorSummary(ctx context.Context, args lokiErrorSummaryArgs) (string, error) {
	query := selector([2]string{"host", args.Host}, [2]string{"container", args.Container}) +
		" |~ " + strconv.Quote(errorPattern)

	lines, err := s.queryLines(ctx, "loki_error_summary", query, args.Start, "", args.Limit)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No error lines since %s for %s.", args.Start, query), nil
	}

	byStream := make(map[string]int)
	byMessage := make(map[string]int)
	for _, l := range lines {
		byStream[streamName(l.Labels)]++
		byMessage[messageKey(l.Line)]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d error line(s) across %d stream(s) since %s", len(lines), len(byStream), args.Start)
	if len(lines) >= args.Limit {
		fmt.Fprintf(&b, " (scan limit %d reached)", args.Limit)
	}
	b.WriteString("\n\nBy stream:\n")
	for _, c := range topCounts(byStream, 20) {
		fmt.Fprintf(&b, "  %6d  %s\n", c.Count, c.Key)
	}
	b.WriteString("\nTop messages:\n")
	for _, c := range topCounts(byMessage, 10) {
		fmt.Fprintf(&b, "  %6d  %s\n", c.Count, c.Key)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// sampleValue reads the numeric value of a [timestamp, "value"] pair.
func sampleValue(v [2]any) float64 {
	switch x := v[1].(type) {
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	case float64:
		return x
	}
	return 0
}

func humanBytes(n float64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	i := 0
	for n >= 1024 && i < len(units)-1 {
		n /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f %s", n, units[i])
	}
	return fmt.Sprintf("%.1f %s", n, units[i])
}

func (s *Server) volumeByLabel(ctx context.Context, args lokiVolumeByLabelArgs) (string, error) {
	query := args.Query
	if query == "" {
		query = "{" + args.Label + `=~".+"}`
	}

	data, err := fetch[vectorResult](ctx, s, "loki_volume_by_label", lokiclient.Request{
		Method: http.MethodGet,
		Path:   "/loki/api/v1/index/volume",
		Params: lokiclient.Params{
			{Name: "query", Value: query},
			{Name: "start", Value: args.Start},
			{Name: "limit", Value: args.Limit},
			{Name: "targetLabels", Value: args.Label},
			{Name: "aggregateBy", Value: "labels"},
		},
	})
	if err != nil {
		return "", err
	}
	if len(data.Result) == 0 {
		return fmt.Sprintf("No volume recorded for label %q since %s.", args.Label, args.Start), nil
	}

	type row struct {
		value string
		bytes float64
	}
	var rows []row
	var total float64
	for _, r := range data.Result {
		b := sampleValue(r.Value)
		rows = append(rows, row{r.Metric[args.Label], b})
		total += b
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].bytes > rows[j].bytes })

	var b strings.Builder
	fmt.Fprintf(&b, "Log volume by %s since %s (total %s):\n\n", args.Label, args.Start, humanBytes(total))
	for _, r := range rows {
		share := 0.0
		if total > 0 {
			share = 100 * r.bytes / total
		}
		name := r.value
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(&b, "  %-32s %12s %6.1f%%\n", name, humanBytes(r.bytes), share)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Server) countLines(ctx context.Context, query string) (float64, error) {
	data, err := fetch[vectorResult](ctx, s, "loki_compare_hosts", lokiclient.Request{
		Method: http.MethodGet,
		Path:   "/loki/api/v1/query",
		Params: lokiclient.Params{{Name: "query", Value: query}},
	})
	if err != nil {
		return 0, err
	}
	var n float64
	for _, r := range data.Result {
		n += sampleValue(r.Value)
	}
	return n, nil
}

func (s *Server) compareHosts(ctx context.Context, args lokiCompareHostsArgs) (string, error) {
	hosts := toolfilter.ParseToolList(args.Hosts)
	if len(hosts) == 0 {
		return "", errors.New("hosts must list at least one host")
	}
	if _, ok := lokiclient.ParseRelative(args.Start); !ok {
		return "", fmt.Errorf("start must be a relative window such as 1h, got %q", args.Start)
	}

	pattern, what := errorPattern, "errors"
	if args.Pattern != "" {
		pattern, what = "(?i)"+args.Pattern, "matches"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hosts over the last %s:\n\n", args.Start)
	fmt.Fprintf(&b, "  %-32s %10s %10s %8s\n", "host", "lines", what, "ratio")
	for _, h := range hosts {
		sel := selector([2]string{"host", h})
		total, err := s.countLines(ctx, fmt.Sprintf("sum(count_over_time(%s[%s]))", sel, args.Start))
		if err != nil {
			return "", err
		}
		hits, err := s.countLines(ctx, fmt.Sprintf("sum(count_over_time(%s |~ %s [%s]))", sel, strconv.Quote(pattern), args.Start))
		if err != nil {
			return "", err
		}
		ratio := 0.0
		if total > 0 {
			ratio = 100 * hits / total
		}
		fmt.Fprintf(&b, "  %-32s %10.0f %10.0f %7.2f%%\n", h, total, hits, ratio)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Server) getOverview(ctx context.Context, _ lokiGetOverviewArgs) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Loki at %s (tools generated for Loki %s)\n", s.cfg.URL, lokiVersion)

	ready, err := s.call(ctx, "loki_get_overview", lokiclient.Request{Method: http.MethodGet, Path: "/ready", Response: lokiclient.ResponseText})
	if err != nil {
		ready = "unreachable: " + err.Error()
	}
	fmt.Fprintf(&b, "Ready: %s\n", strings.TrimSpace(ready))

	build, err := fetchRaw[map[string]any](ctx, s, "/loki/api/v1/status/buildinfo")
	if err != nil {
		fmt.Fprintf(&b, "Build: unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "Build: version %v, revision %v\n", build["version"], build["revision"])
	}

	labels, err := fetch[[]string](ctx, s, "loki_get_overview", lokiclient.Request{
		Method: http.MethodGet,
		Path:   "/loki/api/v1/labels",
		Params: lokiclient.Params{{Name: "start", Value: "1h"}},
	})
	if err != nil {
		fmt.Fprintf(&b, "Labels: unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "Labels (last hour): %s\n", strings.Join(labels, ", "))
	}

	mode := "read-write"
	if s.cfg.ReadOnly {
		mode = "read-only"
	}
	fmt.Fprintf(&b, "\nMode: %s\nEnabled modules: %s\nRegistered tools: %d of %d",
		mode, strings.Join(s.cfg.EnabledModules(), ", "), len(s.tools), len(allTools))
	return b.String(), nil
}

// fetchRaw decodes a response that is not wrapped in a data envelope.
func fetchRaw[T any](ctx context.Context, s *Server, path string) (T, error) {
	var v T
	resp, err := s.do(ctx, "loki_get_overview", lokiclient.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return v, fmt.Errorf("decode %s response: %w", path, err)
	}
	return v, nil
}

func (s *Server) searchTools(_ context.Context, args lokiSearchToolsArgs) (string, error) {
	tools := make([]toolfilter.Tool, 0, len(allTools))
	names := make([]string, 0, len(allTools))
	for name, desc := range allTools {
		tools = append(tools, toolfilter.Tool{Name: name, Description: desc})
		names = append(names, name)
	}
	sort.Strings(names)

	matches := toolfilter.Search(tools, args.Keyword)
	if len(matches) == 0 {
		msg := fmt.Sprintf("No tools match %q.", args.Keyword)
		keyword := strings.ToLower(strings.TrimSpace(args.Keyword))
		if !strings.HasPrefix(keyword, "loki_") {
			keyword = "loki_" + keyword
		}
		if suggestion := toolfilter.SuggestTool(keyword, names); suggestion != "" {
			msg += fmt.Sprintf(" Did you mean '%s'?", suggestion)
		}
		return msg, nil
	}

	registered := make(map[string]bool, len(s.tools))
	for _, def := range s.tools {
		registered[def.Name] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d tool(s) match %q:\n", len(matches), args.Keyword)
	for _, t := range matches {
		note := ""
		if !registered[t.Name] {
			note = " (not available with the current configuration)"
		}
		fmt.Fprintf(&b, "\n  %s: %s%s", t.Name, t.Description, note)
	}
	return b.String(), nil
}

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func (s *Server) reportIssue(_ context.Context, args lokiReportIssueArgs) (string, error) {
	title := fmt.Sprintf("%s: %s", args.ToolName, firstLine(args.Error, 80))

	var body strings.Builder
	fmt.Fprintf(&body, "Tool: %s\n", args.ToolName)
	fmt.Fprintf(&body, "Server version: %s\n", s.opts.Version)
	fmt.Fprintf(&body, "Generated for Loki: %s\n", lokiVersion)
	fmt.Fprintf(&body, "Read-only: %t\n\n", s.cfg.ReadOnly)
	fmt.Fprintf(&body, "Error:\n```\n%s\n```\n", args.Error)
	if args.Context != "" {
		fmt.Fprintf(&body, "\nContext:\n%s\n", args.Context)
	}
	if _, known := allTools[args.ToolName]; !known {
		body.WriteString("\nNote: the tool name is not part of this server.\n")
	}

	return fmt.Sprintf("Run this command to file the issue:\n\ngh issue create --repo %s --title %s --body %s",
		issueRepo, shellQuote(title), shellQuote(body.String())), nil
}

func firstLine(s string, n int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if head, cut := clip(s, n); cut {
		return head + "..."
	}
	return s
}

func (s *Server) validateQuery(ctx context.Context, args lokiValidateQueryArgs) (string, error) {
	formatted, err := fetch[string](ctx, s, "loki_validate_query", lokiclient.Request{
		Method: http.MethodGet,
		Path:   "/loki/api/v1/format_query",
		Params: lokiclient.Params{{Name: "query", Value: args.Query}},
	})
	var apiErr *lokiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		return "Invalid LogQL query: " + apiErr.Body, nil
	}
	if err != nil {
		return "", err
	}
	return "Valid LogQL query.\n\nFormatted:\n" + formatted, nil
}
