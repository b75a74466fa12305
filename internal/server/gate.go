package server

import (
	"fmt"
	"strings"

	"github.com/abl030/loki-mcp/internal/config"
)

// Gate decides whether a tool may run. It is built once from the
// configuration and is read-only afterwards.
type Gate struct {
	readOnly bool
	enabled  map[string]bool
	metrics  *Metrics
}

// NewGate builds the gate of cfg. metrics may be nil.
func NewGate(cfg *config.Config, metrics *Metrics) *Gate {
	g := &Gate{
		readOnly: cfg.ReadOnly,
		enabled:  make(map[string]bool, len(knownModules)),
		metrics:  metrics,
	}
	for _, m := range knownModules {
		g.enabled[m] = cfg.ModuleEnabled(m)
	}
	return g
}

// Registered reports whether a tool of module should be offered at all.
func (g *Gate) Registered(module string, mutation bool) bool {
	_, ok := g.check(module, mutation)
	return ok
}

// Allow checks a call of a tool of module. When the call is refused it
// returns the message to send back instead of calling Loki.
func (g *Gate) Allow(module string, mutation bool) (string, bool) {
	msg, ok := g.check(module, mutation)
	if !ok && g.metrics != nil {
		g.metrics.refusal(module)
	}
	return msg, ok
}

func (g *Gate) check(module string, mutation bool) (string, bool) {
	if module == "" {
		return "", true
	}
	if !g.enabled[module] {
		var on []string
		for _, m := range knownModules {
			if g.enabled[m] {
				on = append(on, m)
			}
		}
		return fmt.Sprintf("Module '%s' is not enabled. Enabled modules: %s. Add it to %s to use this tool.",
			module, strings.Join(on, ", "), config.EnvName("modules")), false
	}
	if g.readOnly && (mutatingModules[module] || mutation) {
		return fmt.Sprintf("Refused: the server runs in read-only mode (%s=true) and this tool changes Loki state.",
			config.EnvName("read_only")), false
	}
	return "", true
}
