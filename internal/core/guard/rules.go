package guard

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aura-home/aura-client/internal/core/domain"
)

//go:embed routes.yaml
var defaultRules []byte

var ErrUnknownRoute = errors.New("no access rule for route")

type rulesFile struct {
	Routes []domain.RouteAccessRule `yaml:"routes"`
}

// Rules is the access rule table of the view shell.
type Rules struct {
	ordered []domain.RouteAccessRule
	byPath  map[string]domain.RouteAccessRule
}

// LoadRules reads the rule table from path, or the built-in table when path
// is empty.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return ParseRules(defaultRules)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file %s: %w", path, err)
	}
	return ParseRules(raw)
}

func DefaultRules() *Rules {
	r, err := ParseRules(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("guard: built-in routes.yaml is invalid: %v", err))
	}
	return r
}

func ParseRules(raw []byte) (*Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}

	r := &Rules{byPath: make(map[string]domain.RouteAccessRule, len(f.Routes))}
	for i, rule := range f.Routes {
		if rule.Path == "" || !strings.HasPrefix(rule.Path, "/") {
			return nil, fmt.Errorf("routes[%d]: path %q must start with /", i, rule.Path)
		}
		if _, dup := r.byPath[rule.Path]; dup {
			return nil, fmt.Errorf("routes[%d]: duplicate path %s", i, rule.Path)
		}
		for _, role := range rule.AllowedRoles {
			if !role.IsValid() {
				return nil, fmt.Errorf("routes[%d] %s: %w %q", i, rule.Path, domain.ErrInvalidRole, role)
			}
		}
		r.byPath[rule.Path] = rule
		r.ordered = append(r.ordered, rule)
	}
	return r, nil
}

// Lookup finds the rule for an echo route pattern ("/payments/:id") or a
// concrete path ("/payments/3").
func (r *Rules) Lookup(path string) (domain.RouteAccessRule, error) {
	if rule, ok := r.byPath[path]; ok {
		return rule, nil
	}
	for _, rule := range r.ordered {
		if matchPattern(rule.Path, path) {
			return rule, nil
		}
	}
	return domain.RouteAccessRule{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Visible returns the navigation entries state may reach, in file order.
func (r *Rules) Visible(state domain.SessionState) []domain.RouteAccessRule {
	var out []domain.RouteAccessRule
	for _, rule := range r.ordered {
		if !rule.Nav {
			continue
		}
		if rule.Public || (state.Authenticated() && (rule.AllowedRoles == nil || state.Role().In(rule.AllowedRoles))) {
			out = append(out, rule)
		}
	}
	return out
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
