package evaluator

// RunEffect runs a suspended effect under fx. This is the only place
// observable side effects occur; constructing an effect never performs
// anything. Cancellation is polled inside the blocking effects
// themselves, not here, so an effect that has been handed to RunEffect
// always begins; a branch whose sibling just failed still reports its
// own outcome instead of a spurious cancellation.
func RunEffect(fx *EffectContext, obj Object) Object {
	v := force(fx.E, obj)
	if isError(v) {
		return v
	}
	eff, ok := v.(*Effect)
	if !ok {
		return newError("expected an effect, got %s", v.Type())
	}
	return eff.perform(fx)
}

// runShielded runs an effect under a token detached from the current
// cancellation tree. Resource release paths use it so release still
// runs inside an already-cancelled scope.
func runShielded(fx *EffectContext, obj Object) Object {
	return RunEffect(&EffectContext{E: fx.E, Token: NewRootToken()}, obj)
}

func okValue(v Object) *Constructor {
	return &Constructor{Name: "Ok", Args: []Object{v}}
}

func errValue(v Object) *Constructor {
	return &Constructor{Name: "Err", Args: []Object{v}}
}

func some(v Object) *Constructor {
	return &Constructor{Name: "Some", Args: []Object{v}}
}

var noneValue = &Constructor{Name: "None"}
