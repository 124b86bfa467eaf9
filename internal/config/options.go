package config

const (
	defaultLogFile           = "aldiaa.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "127.0.0.1"
	defaultData              = "/var/opt/aldiaa"
	defaultDBName            = "aldiaa.db"
	defaultPageSize          = 20
	defaultLoginDelayMs      = 1500
	defaultSyncDelayMs       = 2000
	defaultSyncWorkers       = 1
	defaultCompressResponses = true

	// EnvPrefix is prepended to every option key when read from the environment,
	// e.g. ALDIAA_PORT or ALDIAA_LOG_LEVEL.
	EnvPrefix = "ALDIAA"
)

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFilemaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the record store (sqlite). Empty means <data>/aldiaa.db
	DSN string `mapstructure:"dsn_uri"`
	// port is the port to listen on
	Port int `mapstructure:"port"`
	// host is the host to listen on
	Host string `mapstructure:"host"`
	// data is the directory to store data
	Data string `mapstructure:"data"`
	// PageSize is the size of the visible window and of every "load more" step
	PageSize int `mapstructure:"page_size"`
	// LoginDelayMs is how long the mock login pretends to talk to a provider
	LoginDelayMs int `mapstructure:"login_delay_ms"`
	// SyncDelayMs is how long the sync indicator stays on after a change
	SyncDelayMs int `mapstructure:"sync_delay_ms"`
	SyncWorkers int `mapstructure:"sync_workers"`
	// CompressResponses enables brotli encoding of API responses when the client accepts it
	CompressResponses bool `mapstructure:"compress_responses"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		PageSize:          defaultPageSize,
		LoginDelayMs:      defaultLoginDelayMs,
		SyncDelayMs:       defaultSyncDelayMs,
		SyncWorkers:       defaultSyncWorkers,
		CompressResponses: defaultCompressResponses,
	}
	return Opts
}

// defaultsMap mirrors GetDefaultOptions for viper, which only resolves
// environment variables for keys it already knows about.
func defaultsMap() map[string]any {
	return map[string]any{
		"log_file":             defaultLogFile,
		"log_level":            defaultLogLevel,
		"log_file_max_size":    defaultLogFileMaxSize,
		"log_file_max_backups": defaultLogFileMaxBackups,
		"log_file_max_age":     defaultLogFileMaxAge,
		"log_compress":         defaultLogCompress,
		"dsn_uri":              "",
		"port":                 defaultPort,
		"host":                 defaultHost,
		"data":                 defaultData,
		"page_size":            defaultPageSize,
		"login_delay_ms":       defaultLoginDelayMs,
		"sync_delay_ms":        defaultSyncDelayMs,
		"sync_workers":         defaultSyncWorkers,
		"compress_responses":   defaultCompressResponses,
	}
}
