// Package platform detects the host OS family and the helper programs a
// terminal library shells out to (tty, stty, infocmp).
//
// Detection never fails. Missing variables and absent files fall back to
// bare command names that the caller's exec lookup resolves later.
package platform

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Info is a snapshot of the host taken once per process by Detect.
type Info struct {
	IsWindows bool `json:"isWindows"`
	// IsCygwin is set for a POSIX emulation shell (MSYS, Git Bash) on a
	// Windows host whose TERM is not "cygwin". It implies IsWindows.
	IsCygwin bool `json:"isCygwin"`
	IsMac    bool `json:"isMac"`

	TTYCommand     string `json:"ttyCommand"`
	STTYCommand    string `json:"sttyCommand"`
	InfocmpCommand string `json:"infocmpCommand"`

	// STTYFileFlag selects the device stty operates on: "-f" for BSD and
	// macOS, "-F" for GNU. Empty under Cygwin-like shells.
	STTYFileFlag string `json:"sttyFileFlag,omitempty"`
}

// STTYArgs returns the arguments that point stty at device, or nil when
// there is no flag for it or no device.
func (i Info) STTYArgs(device string) []string {
	if i.STTYFileFlag == "" || device == "" {
		return nil
	}
	return []string{i.STTYFileFlag, device}
}

func (i Info) String() string {
	flag := i.STTYFileFlag
	if flag == "" {
		flag = "none"
	}
	return fmt.Sprintf("windows=%t cygwin=%t mac=%t tty=%s stty=%s stty-flag=%s infocmp=%s",
		i.IsWindows, i.IsCygwin, i.IsMac, i.TTYCommand, i.STTYCommand, flag, i.InfocmpCommand)
}

var detect = sync.OnceValue(func() Info {
	return Probe(HostEnvironment())
})

// Detect probes the host on first call and returns the same Info for the
// rest of the process. Safe for concurrent use.
func Detect() Info {
	return detect()
}

type ProbeOption func(*probeConfig)

type probeConfig struct {
	logger *slog.Logger
}

// WithLogger logs PATH probing at debug level.
func WithLogger(l *slog.Logger) ProbeOption {
	return func(c *probeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Probe computes Info from env without caching.
func Probe(env Environment, opts ...ProbeOption) Info {
	cfg := probeConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	osName := strings.ToLower(env.OSName())
	info := Info{
		IsWindows: strings.Contains(osName, "win"),
		IsMac:     strings.Contains(osName, "mac"),
	}

	pwd, hasPWD := env.LookupEnv("PWD")
	term, _ := env.LookupEnv("TERM")
	info.IsCygwin = info.IsWindows && hasPWD && strings.HasPrefix(pwd, "/") && term != "cygwin"

	if !info.IsCygwin {
		info.TTYCommand = "tty"
		info.STTYCommand = "stty"
		info.InfocmpCommand = "infocmp"
		if info.IsMac {
			info.STTYFileFlag = "-f"
		} else {
			info.STTYFileFlag = "-F"
		}
		return info
	}

	info.TTYCommand = "tty.exe"
	info.STTYCommand = "stty.exe"
	info.InfocmpCommand = "infocmp.exe"

	path, ok := env.LookupEnv("PATH")
	if !ok {
		return info
	}
	commands := []struct {
		name string
		dst  *string
	}{
		{"tty.exe", &info.TTYCommand},
		{"stty.exe", &info.STTYCommand},
		{"infocmp.exe", &info.InfocmpCommand},
	}
	// Every directory is visited and later hits overwrite earlier ones, so
	// the last PATH entry holding a program wins.
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		for _, c := range commands {
			if p, found := lookIn(env.Fs(), dir, c.name, cfg.logger); found {
				*c.dst = p
			}
		}
	}
	return info
}

func lookIn(fs afero.Fs, dir, name string, logger *slog.Logger) (string, bool) {
	candidate := filepath.Join(dir, name)
	exists, err := afero.Exists(fs, candidate)
	if err != nil {
		logger.Debug("platform: stat failed", "path", candidate, "error", err)
		return "", false
	}
	if !exists {
		return "", false
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return candidate, true
	}
	logger.Debug("platform: found helper", "name", name, "path", abs)
	return abs, true
}
