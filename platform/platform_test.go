package platform

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv struct {
	name string
	vars map[string]string
	fs   afero.Fs
}

func (e fakeEnv) OSName() string { return e.name }

func (e fakeEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e fakeEnv) Fs() afero.Fs {
	if e.fs == nil {
		return afero.NewMemMapFs()
	}
	return e.fs
}

func joinPath(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}

func touch(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, nil, 0o755))
}

func TestIsWindows(t *testing.T) {
	for name, want := range map[string]bool{
		"Windows 10":     true,
		"WINDOWS SERVER": true,
		"windows":        true,
		"Linux":          false,
		"Mac OS X":       false,
		"FreeBSD":        false,
		"":               false,
	} {
		info := Probe(fakeEnv{name: name})
		assert.Equal(t, want, info.IsWindows, name)
	}
}

func TestIsMac(t *testing.T) {
	assert.True(t, Probe(fakeEnv{name: "Mac OS X"}).IsMac)
	assert.True(t, Probe(fakeEnv{name: "MACOS"}).IsMac)
	assert.False(t, Probe(fakeEnv{name: "Linux"}).IsMac)
}

func TestIsCygwinMatrix(t *testing.T) {
	type pwdCase struct {
		set   bool
		value string
	}
	type termCase struct {
		set   bool
		value string
	}
	osNames := map[string]bool{"Windows 10": true, "Linux": false}
	pwds := []pwdCase{{false, ""}, {true, "/home/me"}, {true, `C:\Users\me`}}
	terms := []termCase{{false, ""}, {true, "cygwin"}, {true, "xterm-256color"}}

	for osName, windows := range osNames {
		for _, pwd := range pwds {
			for _, term := range terms {
				vars := map[string]string{}
				if pwd.set {
					vars["PWD"] = pwd.value
				}
				if term.set {
					vars["TERM"] = term.value
				}
				want := windows && pwd.set && strings.HasPrefix(pwd.value, "/") && term.value != "cygwin"

				info := Probe(fakeEnv{name: osName, vars: vars})
				assert.Equal(t, want, info.IsCygwin, "os=%s pwd=%+v term=%+v", osName, pwd, term)
				if info.IsCygwin {
					assert.True(t, info.IsWindows)
				}
			}
		}
	}
}

func TestPosixCommands(t *testing.T) {
	mac := Probe(fakeEnv{name: "Mac OS X", vars: map[string]string{"PATH": "/usr/bin"}})
	assert.Equal(t, "tty", mac.TTYCommand)
	assert.Equal(t, "stty", mac.STTYCommand)
	assert.Equal(t, "infocmp", mac.InfocmpCommand)
	assert.Equal(t, "-f", mac.STTYFileFlag)

	linux := Probe(fakeEnv{name: "Linux"})
	assert.Equal(t, "-F", linux.STTYFileFlag)
	assert.Equal(t, "stty", linux.STTYCommand)
}

func TestPlainWindowsUsesBareNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/bin/stty.exe")
	info := Probe(fakeEnv{
		name: "Windows 10",
		vars: map[string]string{"PWD": "/c/work", "TERM": "cygwin", "PATH": "/bin"},
		fs:   fs,
	})
	assert.True(t, info.IsWindows)
	assert.False(t, info.IsCygwin)
	assert.Equal(t, "stty", info.STTYCommand)
	assert.Equal(t, "-F", info.STTYFileFlag)
}

func TestCygwinDefaultsWithoutPath(t *testing.T) {
	info := Probe(fakeEnv{name: "Windows 10", vars: map[string]string{"PWD": "/home/me"}})
	require.True(t, info.IsCygwin)
	assert.Equal(t, "tty.exe", info.TTYCommand)
	assert.Equal(t, "stty.exe", info.STTYCommand)
	assert.Equal(t, "infocmp.exe", info.InfocmpCommand)
	assert.Empty(t, info.STTYFileFlag)
}

func TestCygwinLastPathMatchWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	first := filepath.FromSlash("/msys64/usr/bin")
	second := filepath.FromSlash("/cygwin/bin")
	touch(t, fs, filepath.Join(first, "stty.exe"))
	touch(t, fs, filepath.Join(second, "stty.exe"))
	touch(t, fs, filepath.Join(first, "tty.exe"))

	info := Probe(fakeEnv{
		name: "Windows 10",
		vars: map[string]string{
			"PWD":  "/home/me",
			"TERM": "xterm",
			"PATH": joinPath(first, filepath.FromSlash("/empty"), second),
		},
		fs: fs,
	})
	require.True(t, info.IsCygwin)

	wantSTTY, err := filepath.Abs(filepath.Join(second, "stty.exe"))
	require.NoError(t, err)
	wantTTY, err := filepath.Abs(filepath.Join(first, "tty.exe"))
	require.NoError(t, err)

	assert.Equal(t, wantSTTY, info.STTYCommand)
	assert.Equal(t, wantTTY, info.TTYCommand)
	assert.Equal(t, "infocmp.exe", info.InfocmpCommand)
}

func TestCygwinSkipsEmptyPathEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "stty.exe")
	dir := filepath.FromSlash("/usr/bin")
	touch(t, fs, filepath.Join(dir, "tty.exe"))

	info := Probe(fakeEnv{
		name: "Windows 10",
		vars: map[string]string{
			"PWD":  "/home/me",
			"PATH": joinPath("", dir, ""),
		},
		fs: fs,
	})
	require.True(t, info.IsCygwin)

	wantTTY, err := filepath.Abs(filepath.Join(dir, "tty.exe"))
	require.NoError(t, err)
	assert.Equal(t, wantTTY, info.TTYCommand)
	assert.Equal(t, "stty.exe", info.STTYCommand, "empty entry must not resolve against the working directory")
}

func TestProbeLogsHits(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := filepath.FromSlash("/usr/bin")
	touch(t, fs, filepath.Join(dir, "infocmp.exe"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	info := Probe(fakeEnv{
		name: "Windows 11",
		vars: map[string]string{"PWD": "/", "PATH": dir},
		fs:   fs,
	}, WithLogger(logger))

	assert.True(t, strings.HasSuffix(info.InfocmpCommand, "infocmp.exe"))
	assert.Contains(t, buf.String(), "found helper")
}

func TestSTTYArgs(t *testing.T) {
	assert.Equal(t, []string{"-F", "/dev/tty"}, Info{STTYFileFlag: "-F"}.STTYArgs("/dev/tty"))
	assert.Nil(t, Info{STTYFileFlag: "-f"}.STTYArgs(""))
	assert.Nil(t, Info{}.STTYArgs("/dev/tty"))
}

func TestInfoString(t *testing.T) {
	s := Probe(fakeEnv{name: "Linux"}).String()
	assert.Contains(t, s, "stty=stty")
	assert.Contains(t, s, "stty-flag=-F")

	c := Probe(fakeEnv{name: "Windows", vars: map[string]string{"PWD": "/x"}}).String()
	assert.Contains(t, c, "stty-flag=none")
}

func TestOSNameFor(t *testing.T) {
	assert.Equal(t, "Windows", osNameFor("windows"))
	assert.Equal(t, "Mac OS X", osNameFor("darwin"))
	assert.Equal(t, "Linux", osNameFor("linux"))
	assert.Equal(t, "", osNameFor(""))
	assert.False(t, Probe(fakeEnv{name: osNameFor("darwin")}).IsWindows)
}

func TestHostEnvironment(t *testing.T) {
	t.Setenv("PWD", "/tmp/work")
	t.Setenv("TERM", "")
	t.Setenv(OSNameEnv, "Windows 10")

	env := HostEnvironment()
	assert.Equal(t, "Windows 10", env.OSName())

	pwd, ok := env.LookupEnv("PWD")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/work", pwd)

	term, ok := env.LookupEnv("TERM")
	assert.True(t, ok, "empty TERM is still set")
	assert.Empty(t, term)

	_, ok = env.LookupEnv("HOME")
	assert.False(t, ok, "only probe variables are exposed")

	info := Probe(env)
	assert.True(t, info.IsCygwin)
}

func TestHostEnvironmentUnsetVariable(t *testing.T) {
	t.Setenv(OSNameEnv, "")
	require.NoError(t, os.Unsetenv(OSNameEnv))
	t.Setenv("PWD", "")
	require.NoError(t, os.Unsetenv("PWD"))

	env := HostEnvironment()
	_, ok := env.LookupEnv("PWD")
	assert.False(t, ok)
	assert.NotEmpty(t, env.OSName())
}

func TestDetectOnce(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]Info, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Detect()
		}(i)
	}
	wg.Wait()
	for _, info := range got {
		assert.Equal(t, got[0], info)
	}

	t.Setenv(OSNameEnv, "Plan 9")
	assert.Equal(t, got[0], Detect(), "environment is sampled once")
}
