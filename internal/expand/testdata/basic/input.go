package basic

// LogLevel is a textual log level.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// ServerConfig holds the listener settings.
//
//go:confgen:config scope="server"
type ServerConfig struct {
	Host    string   `confgen:"host,default=localhost"`
	Port    int      `confgen:"port,default=8080"`
	Timeout float64  `confgen:"timeout,default=2.5"`
	TLS     bool     `confgen:"tls,default=false"`
	Level   LogLevel `confgen:"level,default=.Info"`

	// requests is runtime state, not configuration.
	requests int
	OnStart  func()
}

// CacheConfig sizes the in-memory cache.
//
//go:confgen:config
type CacheConfig struct {
	Size int `confgen:"cache.size,default=128"`
}

// Empty has nothing to load.
//
//go:confgen:config scope="empty"
type Empty struct {
	note string
}

// App groups every configuration of the service.
//
//go:confgen:group scope="app"
type App struct {
	Server ServerConfig
	Cache  *CacheConfig
}
