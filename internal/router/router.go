package router

import (
	"fmt"
	"regexp"

	"github.com/nhdewitt/tcp-router/internal/handler"
)

// Route sends requests with Method whose target matches Pattern to Handler.
// Pattern is a regular expression; its last capture group, if any, is handed
// to the handler.
type Route struct {
	Method  string
	Pattern string
	Handler handler.ID
}

func (r Route) String() string {
	return fmt.Sprintf("%s %s -> %s", r.Method, r.Pattern, r.Handler)
}

// DefaultRoutes is the server's route table. Order matters: when two
// patterns overlap, the earlier one wins.
var DefaultRoutes = []Route{
	{Method: "GET", Pattern: `^/$`, Handler: handler.Index},
	{Method: "GET", Pattern: `^/echo/(.*)$`, Handler: handler.Echo},
	{Method: "GET", Pattern: `^/user-agent$`, Handler: handler.UserAgent},
	{Method: "GET", Pattern: `^/files/(.*)$`, Handler: handler.GetFile},
	{Method: "POST", Pattern: `^/files/(.*)$`, Handler: handler.PostFile},
}

type entry struct {
	route Route
	re    *regexp.Regexp
}

// Table is an ordered, compiled route list. It is never modified after
// NewTable and may be shared freely.
type Table struct {
	entries []entry
}

// Match is the outcome of a successful lookup.
type Match struct {
	Route    Route
	Captures []string
}

// Capture returns the last capture group, or "" for patterns without one.
func (m Match) Capture() string {
	if len(m.Captures) == 0 {
		return ""
	}
	return m.Captures[len(m.Captures)-1]
}

// NewTable compiles every pattern up front so a bad table fails at startup.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{entries: make([]entry, 0, len(routes))}
	for i, r := range routes {
		if r.Method == "" {
			return nil, fmt.Errorf("route %d: empty method", i)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %d (%s): %w", i, r.Pattern, err)
		}
		t.entries = append(t.entries, entry{route: r, re: re})
	}

	return t, nil
}

// Match returns the first route whose method equals method and whose pattern
// matches target. ok is false when nothing matches.
func (t *Table) Match(method, target string) (m Match, ok bool) {
	for _, e := range t.entries {
		if e.route.Method != method {
			continue
		}
		sub := e.re.FindStringSubmatch(target)
		if sub == nil {
			continue
		}
		return Match{Route: e.route, Captures: sub[1:]}, true
	}

	return Match{}, false
}

func (t *Table) Routes() []Route {
	routes := make([]Route, len(t.entries))
	for i, e := range t.entries {
		routes[i] = e.route
	}
	return routes
}
