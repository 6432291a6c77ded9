package settings

// Recognized keys.
const (
	Enabled              = "Enabled"
	EnableVersionControl = "EnableVersionControl"
	ApiKey               = "ApiKey"
	BaseURL              = "BaseURL"
	ActiveProject        = "ActiveProject"
)

// Provider is a synchronous key-value store. The last write wins.
type Provider interface {
	Bool(key string) bool
	SetBool(key string, value bool)
	String(key string) string
	SetString(key string, value string)
}

// Defaults returns the default value of each recognized key.
// The active project defaults to the name of the host application.
func Defaults(appName string) map[string]interface{} {
	return map[string]interface{}{
		Enabled:              false,
		EnableVersionControl: true,
		ApiKey:               "",
		BaseURL:              "",
		ActiveProject:        appName,
	}
}
