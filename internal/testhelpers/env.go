package testhelpers

// LookupEnv returns an [os.LookupEnv] replacement that serves vars and reports every other key as unset.
func LookupEnv(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}
