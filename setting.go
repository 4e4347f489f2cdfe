package graalmk

// Setting is a configuration value that is resolved when an action runs. The
// boolean result is false if the setting is absent. A nil Setting is absent.
type Setting func(env *Env) (string, bool)

func (s Setting) Get(env *Env) (string, bool) {
	if s == nil {
		return "", false
	}
	return s(env)
}

// Value is a fixed setting. The empty string is absent.
func Value(v string) Setting {
	return func(*Env) (string, bool) { return v, v != "" }
}

var Unset Setting = func(*Env) (string, bool) { return "", false }

// EnvVar reads the setting from the variable key of the action's env. An
// empty variable is absent.
func EnvVar(key string) Setting {
	return func(env *Env) (string, bool) {
		if env == nil {
			return "", false
		}
		v, ok := env.Var(key)
		return v, ok && v != ""
	}
}

// FirstOf is the first present setting of ss.
func FirstOf(ss ...Setting) Setting {
	return func(env *Env) (string, bool) {
		for _, s := range ss {
			if v, ok := s.Get(env); ok {
				return v, true
			}
		}
		return "", false
	}
}
