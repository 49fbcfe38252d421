package config

// defaults returns the default configuration values.
// These are loaded first and can be overridden by the YAML file and env vars.
func defaults() map[string]any {
	return map[string]any{
		"log.level":  "warn",
		"log.format": "text",

		"output.format":    "plain",
		"output.precision": "display",
		"output.color":     "auto",

		"observer.default": "",
		"observer.file":    "",

		"sky.refresh": "1s",
	}
}
