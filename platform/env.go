package platform

import (
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Environment is the host data Probe reads.
type Environment interface {
	// OSName is a descriptive OS name such as "Windows 10" or "Mac OS X".
	OSName() string
	// LookupEnv reports the value of an environment variable and whether
	// it is set at all.
	LookupEnv(key string) (string, bool)
	// Fs is where PATH directories are checked for helper programs.
	Fs() afero.Fs
}

const (
	keyOSName = "os.name"

	// OSNameEnv overrides the OS name derived from GOOS.
	OSNameEnv = "TERMSYS_OS_NAME"
)

// envKeys maps the variables Probe consumes to their viper keys.
var envKeys = map[string]string{
	"PWD":  "pwd",
	"TERM": "term",
	"PATH": "path",
}

type hostEnv struct {
	v  *viper.Viper
	fs afero.Fs
}

// HostEnvironment samples the running process: environment variables
// through viper and the real filesystem.
func HostEnvironment() Environment {
	v := viper.New()
	// A variable set to "" is still set.
	v.AllowEmptyEnv(true)
	for env, key := range envKeys {
		_ = v.BindEnv(key, env)
	}
	_ = v.BindEnv(keyOSName, OSNameEnv)
	v.SetDefault(keyOSName, osNameFor(runtime.GOOS))

	return &hostEnv{v: v, fs: afero.NewOsFs()}
}

func (e *hostEnv) OSName() string { return e.v.GetString(keyOSName) }

func (e *hostEnv) LookupEnv(name string) (string, bool) {
	key, ok := envKeys[name]
	if !ok || !e.v.IsSet(key) {
		return "", false
	}
	return e.v.GetString(key), true
}

func (e *hostEnv) Fs() afero.Fs { return e.fs }

// osNameFor turns GOOS into the descriptive name the probe classifies.
// "darwin" itself contains "win", so it must not be passed through.
func osNameFor(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin", "ios":
		return "Mac OS X"
	case "":
		return ""
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}
