package mcp

import (
	"errors"
	"io"
	"strings"
)

// ErrUnterminatedQuote is returned by SplitCommand for an unbalanced quote.
var ErrUnterminatedQuote = errors.New("unterminated quote in command string")

// SplitCommand splits a shell-like command line into arguments. Single
// quotes are literal, double quotes honour \" \\ and \$, and a backslash
// outside quotes escapes the next character. A quoted empty string is kept
// as an empty argument.
func SplitCommand(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune // 0, '\'' or '"'
		pending bool // cur holds an argument, possibly empty
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case quote == '\'':
			if ch == '\'' {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}
		case quote == '"':
			switch {
			case ch == '"':
				quote = 0
			case ch == '\\' && i+1 < len(runes) && strings.ContainsRune(`"\$`, runes[i+1]):
				i++
				cur.WriteRune(runes[i])
			default:
				cur.WriteRune(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			pending = true
		case ch == '\\':
			if i+1 < len(runes) {
				i++
			}
			cur.WriteRune(runes[i])
			pending = true
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(ch)
			pending = true
		}
	}
	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if pending {
		args = append(args, cur.String())
	}
	return args, nil
}

// NewCommandTransport is NewStdioTransport for a command line such as
// "loki-mcp serve --config prod.yaml".
func NewCommandTransport(line string, env []string, stderr io.Writer) (*StdioTransport, error) {
	parts, err := SplitCommand(line)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, errors.New("empty command")
	}
	return NewStdioTransport(parts[0], parts[1:], env, stderr), nil
}
