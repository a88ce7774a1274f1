package gateway

// Ref designates targets: a target value, a document id, or a sequence.
// The zero Ref designates nothing.
type Ref struct {
	target any
	id     string
	refs   []Ref
	seq    bool
}

// El refers to target directly.
func El(target any) Ref {
	return Ref{target: target}
}

// ID refers to the document element with id.
func ID(id string) Ref {
	return Ref{id: id}
}

// Refs combines refs; operations apply to each element.
func Refs(refs ...Ref) Ref {
	return Ref{refs: refs, seq: true}
}

// Targets is Refs over target values.
func Targets(targets ...any) Ref {
	refs := make([]Ref, len(targets))
	for i, t := range targets {
		refs[i] = El(t)
	}
	return Refs(refs...)
}

// IsZero reports whether r designates nothing.
func (r Ref) IsZero() bool {
	return r.target == nil && r.id == "" && !r.seq
}

// resolve flattens r into live targets, dropping unresolved ids.
func (g *Gateway) resolve(r Ref) []any {
	switch {
	case r.seq:
		var out []any
		for _, sub := range r.refs {
			out = append(out, g.resolve(sub)...)
		}
		return out
	case r.target != nil:
		return []any{r.target}
	case r.id != "":
		if g.doc == nil {
			return nil
		}
		t, ok := g.doc.ElementByID(r.id)
		if !ok || t == nil {
			g.log.Debug().Str("id", r.id).Msg("target id not found")
			return nil
		}
		return []any{t}
	}
	return nil
}
