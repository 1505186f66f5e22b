//go:build windows

package config

// maps the variable names used in $(VAR) config placeholders to their
// Windows equivalents.
func mapEnvKey(key string) string {
	if key == "HOSTNAME" {
		return "COMPUTERNAME"
	}
	return key
}
