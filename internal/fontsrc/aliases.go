package fontsrc

// Aliases maps historical font names to the names fonts are stored under.
type Aliases map[string]string

// DefaultAliases returns the built-in renames.
func DefaultAliases() Aliases {
	return Aliases{
		"ANSI-Compact": "ANSI Compact",
	}
}

// Resolve returns the canonical name for name, or name itself.
func (a Aliases) Resolve(name string) string {
	if canonical, ok := a[name]; ok {
		return canonical
	}
	return name
}

// With returns a copy of a extended by extra. Entries in extra win.
func (a Aliases) With(extra map[string]string) Aliases {
	out := make(Aliases, len(a)+len(extra))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
