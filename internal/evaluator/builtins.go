package evaluator

// The builtin surface: flat core names (pure, fail, bind, ...) plus
// namespaced records (channel, concurrent, resource, collections, file,
// db, clock). Builtins are inserted into the global environment before
// user definitions; a user definition colliding with a builtin name is
// rejected in favor of the builtin.

// Builtins holds the flat core builtins by name.
var Builtins = map[string]*Builtin{}

// Namespaces holds the namespaced builtin records by name.
var Namespaces = map[string]*Record{}

func registerBuiltin(b *Builtin) {
	if _, ok := Builtins[b.Name]; ok {
		panic("duplicate builtin " + b.Name)
	}
	Builtins[b.Name] = b
}

// namespace builds a Record whose fields are builtins named
// "<ns>.<field>", plus any plain member values.
func registerNamespace(name string, members map[string]Object) {
	fields := make([]RecordEntry, 0, len(members))
	for key, val := range members {
		fields = append(fields, RecordEntry{Key: key, Value: val})
	}
	Namespaces[name] = NewRecord(fields)
}

func nsBuiltin(ns, name string, arity int, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: ns + "." + name, Arity: arity, Fn: fn}
}

// IsBuiltinName reports whether name is reserved by the builtin
// surface (a flat builtin or a namespace root).
func IsBuiltinName(name string) bool {
	if _, ok := Builtins[name]; ok {
		return true
	}
	if _, ok := Namespaces[name]; ok {
		return true
	}
	return false
}

// RegisterInto inserts every builtin into env. Called once per run,
// before user definitions. Namespaces go in first so a flat builtin
// sharing a namespace's name (map) keeps the flat binding; the
// namespace's members stay reachable through their dotted names.
func RegisterInto(env *Environment) {
	for name, rec := range Namespaces {
		env.Set(name, rec)
	}
	for name, b := range Builtins {
		env.Set(name, b)
	}
}
