package config // import "github.com/Xunop/aldiaa/internal/config"

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var Opts *Options

// GetConfig resolves the options from defaults, the optional config file and
// the environment, in that order, and prepares the data directory.
func GetConfig(file string) (*Options, error) {
	v := newViper()
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, "unable to access config file %s", file)
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	opts := GetDefaultOptions()
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "unable to decode options")
	}

	dataDir, err := checkDataDir(opts.Data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error checking data directory: ", err)
		return nil, err
	}
	opts.Data = dataDir
	if opts.DSN == "" {
		opts.DSN = filepath.Join(opts.Data, defaultDBName)
	}
	if opts.LogFile != "" && !filepath.IsAbs(opts.LogFile) {
		opts.LogFile = filepath.Join(opts.Data, opts.LogFile)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.SyncWorkers <= 0 {
		opts.SyncWorkers = defaultSyncWorkers
	}

	Opts = opts
	return Opts, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaultsMap() {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err == nil {
		return dataDir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}

	err := os.MkdirAll(dataDir, 0755)
	if err == nil {
		return dataDir, nil
	}
	if !errors.Is(err, os.ErrPermission) || dataDir != defaultData {
		return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
	}

	// Permission denied on the default location, fall back to the user's home directory
	currentUser, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "unable to get current user")
	}
	if currentUser.HomeDir == "" {
		return "", errors.New("unable to get home directory")
	}
	homeData := filepath.Join(currentUser.HomeDir, ".aldiaa")
	if err := os.MkdirAll(homeData, 0755); err != nil {
		return "", errors.Wrapf(err, "unable to create default data folder %s", homeData)
	}
	return homeData, nil
}

// Addr is the listen address of the API server.
func (o *Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func (o *Options) LoginDelay() time.Duration {
	return time.Duration(o.LoginDelayMs) * time.Millisecond
}

func (o *Options) SyncDelay() time.Duration {
	return time.Duration(o.SyncDelayMs) * time.Millisecond
}
