package contextkey

// key is a private type to avoid context key collisions across packages.
type key string

const (
	Command    key = "command"
	ConfigPath key = "config_path"
	Package    key = "package"
)
