package themecss

import "runtime"

// Appearance values used as system context tags.
const (
	Light = "light"
	Dark  = "dark"
)

// OSName returns the operating system tag for the running platform.
// darwin is reported as macos.
func OSName() string {
	return osTag(runtime.GOOS)
}

func osTag(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// SystemContext returns the default context tags: the OS tag followed by the
// appearance, e.g. ["macos", "dark"]. An empty appearance is left out.
func SystemContext(appearance string) []string {
	context := []string{OSName()}
	if appearance != "" {
		context = append(context, appearance)
	}
	return context
}
