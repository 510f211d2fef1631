// Package symbols provides the lexical scope chain shared by the type
// checker, the IR generator and the interpreter. Each stage
// instantiates it with its own payload (a type, an IR variable, a
// runtime value).
package symbols

// Scope maps names to a payload and chains to an enclosing scope.
// Lookup walks up the chain; declaration is per-scope and rejects
// redeclaration. Scopes live only as long as the syntactic construct
// that created them.
type Scope[T any] struct {
	locals map[string]T
	parent *Scope[T]
}

// NewScope creates a scope chained to parent (nil for a root scope).
func NewScope[T any](parent *Scope[T]) *Scope[T] {
	return &Scope[T]{
		locals: make(map[string]T),
		parent: parent,
	}
}

// Declare binds name in this scope. It reports false when the name is
// already bound here; shadowing an outer binding is fine.
func (s *Scope[T]) Declare(name string, value T) bool {
	if _, exists := s.locals[name]; exists {
		return false
	}
	s.locals[name] = value
	return true
}

// Lookup finds the nearest binding for name, walking up the chain.
func (s *Scope[T]) Lookup(name string) (T, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.locals[name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Assign rebinds the nearest existing binding for name. It reports
// false when no scope in the chain binds it.
func (s *Scope[T]) Assign(name string, value T) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.locals[name]; ok {
			sc.locals[name] = value
			return true
		}
	}
	return false
}

// Parent returns the enclosing scope, nil at the root.
func (s *Scope[T]) Parent() *Scope[T] { return s.parent }
