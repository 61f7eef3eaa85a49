// Package reconciler maps free-text organization abbreviations found in
// report documents to canonical registry abbreviations.
//
// Both agencies and components are resolved with the same cascade: an exact
// match, then the normalized form, then the curated fix table. A fix whose
// target is not itself registered is reported as an invalid fix rather than
// trusted.
package reconciler

import (
	"github.com/agentstation/foiafix/internal/cache"
	"github.com/agentstation/foiafix/pkg/abbrev"
	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
)

// Registry is the subset of registry queries the reconciler needs.
type Registry interface {
	AgencyExists(abbrev string) bool
	ComponentExists(agency, component string) bool
	AgencyFix(raw string) (string, bool)
	ComponentFix(agency, raw string) (string, bool)
}

// Method records which step of the cascade produced a resolution.
type Method string

// String returns the string representation of a method.
func (m Method) String() string {
	return string(m)
}

const (
	// MethodExact means the raw text was already canonical.
	MethodExact Method = "exact"
	// MethodNormalized means the normalized text was canonical.
	MethodNormalized Method = "normalized"
	// MethodFix means a curated fix table entry was applied.
	MethodFix Method = "fix"
)

// Resolution is a successful mapping from raw text to a canonical abbreviation.
type Resolution struct {
	Raw        string
	Normalized string
	Canonical  string
	Method     Method
	// Scope is "agency" or the canonical agency a component belongs to.
	Scope string
}

// Changed reports whether the canonical value differs from the raw text.
func (r Resolution) Changed() bool {
	return r.Raw != r.Canonical
}

// Reconciler resolves abbreviations against a Registry.
type Reconciler struct {
	reg   Registry
	cache *cache.Cache
}

// New creates a Reconciler over reg.
func New(reg Registry, opts ...Option) (*Reconciler, error) {
	if reg == nil {
		return nil, &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	r := &Reconciler{reg: reg}
	if options.cacheTTL > 0 {
		r.cache = cache.New(options.cacheTTL, constants.CacheCleanupInterval)
	}
	return r, nil
}

// scope bundles the lookups for one resolution namespace.
type scope struct {
	name   string
	exists func(string) bool
	fix    func(string) (string, bool)
}

// ResolveAgency resolves a raw agency abbreviation.
func (r *Reconciler) ResolveAgency(raw string) (Resolution, error) {
	return r.resolve(raw, scope{
		name:   errors.ScopeAgency,
		exists: r.reg.AgencyExists,
		fix:    r.reg.AgencyFix,
	})
}

// ResolveComponent resolves a raw component abbreviation within the scope of
// a canonical agency abbreviation.
func (r *Reconciler) ResolveComponent(raw, agency string) (Resolution, error) {
	return r.resolve(raw, scope{
		name: agency,
		exists: func(s string) bool {
			return r.reg.ComponentExists(agency, s)
		},
		fix: func(s string) (string, bool) {
			return r.reg.ComponentFix(agency, s)
		},
	})
}

// CacheStats returns memoization statistics, or zero stats when caching is off.
func (r *Reconciler) CacheStats() cache.Stats {
	if r.cache == nil {
		return cache.Stats{}
	}
	return r.cache.GetStats()
}

func (r *Reconciler) resolve(raw string, s scope) (Resolution, error) {
	key := s.name + "\x00" + raw
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			return v.(Resolution), nil
		}
	}

	res, err := r.cascade(raw, s)
	if err != nil {
		return Resolution{}, err
	}
	if r.cache != nil {
		r.cache.Set(key, res)
	}
	return res, nil
}

func (r *Reconciler) cascade(raw string, s scope) (Resolution, error) {
	normalized := abbrev.Normalize(raw)
	res := Resolution{Raw: raw, Normalized: normalized, Scope: s.name}

	if s.exists(raw) {
		res.Canonical, res.Method = raw, MethodExact
		return res, nil
	}
	if s.exists(normalized) {
		res.Canonical, res.Method = normalized, MethodNormalized
		return res, nil
	}

	from := normalized
	to, ok := s.fix(normalized)
	if !ok && raw != normalized {
		from = raw
		to, ok = s.fix(raw)
	}
	if ok {
		if !s.exists(to) {
			return Resolution{}, &errors.InvalidFixError{Scope: s.name, From: from, To: to}
		}
		res.Canonical, res.Method = to, MethodFix
		return res, nil
	}

	return Resolution{}, &errors.UnresolvedAbbreviationError{
		Raw:        raw,
		Normalized: normalized,
		Scope:      s.name,
	}
}
