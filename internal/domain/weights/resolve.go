package weights

// Resolve picks the configuration that applies to a subject, trying scopes
// most-specific-first: position, then department, then global. The fallback
// chain is explicit; it never depends on result ordering.
func Resolve(configs []Configuration, subject Subject) (Configuration, bool) {
	if subject.PositionID != "" {
		if cfg, ok := findActive(configs, ScopePosition, subject.PositionID); ok {
			return cfg, true
		}
	}
	if subject.DepartmentID != "" {
		if cfg, ok := findActive(configs, ScopeDepartment, subject.DepartmentID); ok {
			return cfg, true
		}
	}
	return findActive(configs, ScopeGlobal, "")
}

func findActive(configs []Configuration, scope, scopeRef string) (Configuration, bool) {
	for _, cfg := range configs {
		if !cfg.Active || cfg.Scope != scope {
			continue
		}
		if scope != ScopeGlobal && cfg.ScopeRef != scopeRef {
			continue
		}
		return cfg, true
	}
	return Configuration{}, false
}
