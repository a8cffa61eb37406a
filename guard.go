package inspect

import (
	"github.com/npillmayer/inspect/match"
)

// Where creates a guard testing the value bound to name with pred. The guard
// fails if name is unbound or its value is not of type T.
func Where[T any](name string, pred func(T) bool) Guard {
	return GuardFunc(func(env *match.Env) (bool, error) {
		v, ok := match.Get[T](env, name)
		if !ok {
			return false, nil
		}
		return pred(v), nil
	})
}

// And returns a guard which holds if all of gs hold. Guards are tested
// left to right, stopping at the first one which fails.
func And(gs ...Guard) Guard {
	return GuardFunc(func(env *match.Env) (bool, error) {
		for _, g := range gs {
			if ok, err := g.Test(env); err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Or returns a guard which holds if any of gs holds.
func Or(gs ...Guard) Guard {
	return GuardFunc(func(env *match.Env) (bool, error) {
		for _, g := range gs {
			if ok, err := g.Test(env); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	})
}

// Not negates a guard.
func Not(g Guard) Guard {
	return GuardFunc(func(env *match.Env) (bool, error) {
		ok, err := g.Test(env)
		return !ok && err == nil, err
	})
}

// Compose returns h = f . g
func Compose[A, B, C any](g func(a A) B, f func(b B) C) func(A) C {
	return func(a A) C {
		return f(g(a))
	}
}
