// Tests for the colorset CLI: version resolution, the one-off accent and
// background commands, init, manifest-driven generate (local, glob and
// remote manifests), and watch mode.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"tools.zach/dev/colorset/internal/catalog"
	"tools.zach/dev/colorset/internal/colors"
)

// ///////////////////////////////////////////////
// Helpers
// ///////////////////////////////////////////////

// execCLI runs the CLI with args and returns the exit code and both streams.
func execCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = run(context.Background(), args, &outBuf, &errBuf)
	return code, outBuf.String(), errBuf.String()
}

func readDescriptor(t *testing.T, path string) catalog.Descriptor {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var d catalog.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return d
}

func accentPath(root, container string) string {
	return filepath.Join(root, container, "Assets.xcassets", "AccentColor.colorset", "Contents.json")
}

func backgroundPath(root, container string) string {
	return filepath.Join(root, container, "Assets.xcassets", "WidgetBackground.colorset", "Contents.json")
}

func writeManifest(t *testing.T, root, content string) string {
	t.Helper()
	path := filepath.Join(root, "colorset.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func srgb(r, g, b, a float64) colors.NormalizedColor {
	return colors.NormalizedColor{
		ColorSpace: colors.SpaceSRGB,
		Components: colors.Components{Alpha: a, Blue: b, Green: g, Red: r},
	}
}

// ///////////////////////////////////////////////
// resolveVersion
// ///////////////////////////////////////////////

func TestResolveVersionWithLdflags(t *testing.T) {
	orig := version
	version = "v1.2.3"
	t.Cleanup(func() { version = orig })

	if got := resolveVersion(); got != "v1.2.3" {
		t.Errorf("resolveVersion() = %q, want %q", got, "v1.2.3")
	}
}

func TestResolveVersionDev(t *testing.T) {
	got := resolveVersion()
	if got != "dev" && !strings.HasPrefix(got, "dev+") {
		t.Errorf("resolveVersion() = %q, want dev or dev+<hash>", got)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := execCLI(t, "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stdout, "colorset dev") {
		t.Errorf("stdout = %q, want colorset dev...", stdout)
	}
}

// ///////////////////////////////////////////////
// accent / background
// ///////////////////////////////////////////////

func TestAccentCommand(t *testing.T) {
	root := t.TempDir()
	code, stdout, stderr := execCLI(t, "accent", "--project-root", root,
		"--container", "MyWidget", "--color", "#FF0000", "--dark-color", "#000000")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	path := accentPath(root, "MyWidget")
	if !strings.Contains(stdout, path) {
		t.Errorf("stdout = %q, want written path %s", stdout, path)
	}

	want := catalog.Descriptor{
		Colors: []catalog.Variant{
			{Color: srgb(1, 0, 0, 1), Idiom: catalog.IdiomUniversal},
			{Appearances: []catalog.Appearance{catalog.DarkAppearance}, Color: srgb(0, 0, 0, 1), Idiom: catalog.IdiomUniversal},
		},
		Info: catalog.Info{Version: 1, Author: "expo"},
	}
	if diff := cmp.Diff(want, readDescriptor(t, path)); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestBackgroundCommand(t *testing.T) {
	root := t.TempDir()
	code, _, stderr := execCLI(t, "background", "--project-root", root,
		"--container", "MyWidget", "--color", "white")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	d := readDescriptor(t, backgroundPath(root, "MyWidget"))
	if len(d.Colors) != 1 || d.Colors[0].Color != srgb(1, 1, 1, 1) {
		t.Errorf("colors = %+v, want one white variant", d.Colors)
	}
}

func TestColorCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid color", []string{"accent", "--container", "W", "--color", "not-a-color"}, "invalid color"},
		{"escaping container", []string{"background", "--container", "../W", "--color", "red"}, "relative path"},
		{"missing container", []string{"accent", "--color", "red"}, "container"},
		{"bad log level", []string{"accent", "--container", "W", "--color", "red", "--log-level", "loud"}, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			code, _, stderr := execCLI(t, append(tt.args, "--project-root", root)...)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.wantErr)
			}
			if _, err := os.Stat(filepath.Join(root, "W")); !os.IsNotExist(err) {
				t.Error("no container directory should be created on failure")
			}
		})
	}
}

// ///////////////////////////////////////////////
// init
// ///////////////////////////////////////////////

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	code, _, stderr := execCLI(t, "init", "--project-root", root)
	if code != 0 {
		t.Fatalf("first init exit code = %d, stderr = %s", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(root, "colorset.toml"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(data), "[[targets]]") {
		t.Errorf("manifest missing targets:\n%s", data)
	}

	code, _, stderr = execCLI(t, "init", "--project-root", root)
	if code != 1 || !strings.Contains(stderr, "already exists") {
		t.Errorf("second init = (%d, %q), want exit 1 already exists", code, stderr)
	}

	code, _, stderr = execCLI(t, "init", "--project-root", root, "--force")
	if code != 0 {
		t.Errorf("forced init exit code = %d, stderr = %s", code, stderr)
	}
}

// ///////////////////////////////////////////////
// generate
// ///////////////////////////////////////////////

func TestGenerateFromInit(t *testing.T) {
	root := t.TempDir()
	if code, _, stderr := execCLI(t, "init", "--project-root", root); code != 0 {
		t.Fatalf("init: %s", stderr)
	}

	code, stdout, stderr := execCLI(t, "generate", "--project-root", root)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "generated 2 colorset(s)") {
		t.Errorf("stdout = %q", stdout)
	}
	for _, p := range []string{accentPath(root, "MyWidget"), backgroundPath(root, "MyWidget")} {
		if d := readDescriptor(t, p); len(d.Colors) != 2 {
			t.Errorf("%s: %d colors, want 2", p, len(d.Colors))
		}
	}
}

func TestGenerateGlobContainers(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"AlphaWidget", "BetaWidget", "App"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeManifest(t, root, `version = 2

[[targets]]
container = "*Widget"

[targets.accent]
color = "rebeccapurple"

[[targets]]
container = "AlphaWidget"

[targets.background]
color = "#1C1C1E"
`)

	code, stdout, stderr := execCLI(t, "generate", "--project-root", root)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "generated 3 colorset(s)") {
		t.Errorf("stdout = %q", stdout)
	}
	for _, p := range []string{
		accentPath(root, "AlphaWidget"),
		accentPath(root, "BetaWidget"),
		backgroundPath(root, "AlphaWidget"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "App", "Assets.xcassets")); !os.IsNotExist(err) {
		t.Error("non-matching container should be untouched")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string // empty means no manifest
		wantErr  string
	}{
		{name: "no manifest", wantErr: "run colorset init"},
		{
			name:     "invalid color",
			manifest: "version = 2\n[[targets]]\ncontainer = \"W\"\n[targets.accent]\ncolor = \"nope\"\n",
			wantErr:  "invalid color",
		},
		{
			name:     "duplicate colorset",
			manifest: "version = 2\n[[targets]]\ncontainer = \"W\"\n[targets.accent]\ncolor = \"red\"\n[[targets]]\ncontainer = \"W\"\n[targets.accent]\ncolor = \"blue\"\n",
			wantErr:  "more than one target",
		},
		{
			name:     "glob without matches",
			manifest: "version = 2\n[[targets]]\ncontainer = \"*Widget\"\n[targets.accent]\ncolor = \"red\"\n",
			wantErr:  "matched no directories",
		},
		{
			name:     "invalid manifest",
			manifest: "version = 2\n[log]\nmax_size_mb = 0\n",
			wantErr:  "validate config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.manifest != "" {
				writeManifest(t, root, tt.manifest)
			}
			code, _, stderr := execCLI(t, "generate", "--project-root", root)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestGenerateNoTargets(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "version = 2\n")

	code, stdout, stderr := execCLI(t, "generate", "--project-root", root)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "generated 0 colorset(s)") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "manifest has no targets") {
		t.Errorf("stderr = %q, want no-targets warning", stderr)
	}
}

func TestGenerateRemoteManifest(t *testing.T) {
	const manifest = "version = 2\n[[targets]]\ncontainer = \"W\"\n[targets.accent]\ncolor = \"red\"\n"
	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(manifest))
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	code, _, stderr := execCLI(t, "generate", "--project-root", root, "--config", srv.URL+"/colorset.toml")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(root, ".colorset", "remote-config.toml")); err != nil {
		t.Errorf("expected remote cache: %v", err)
	}

	// Served from cache once the server stops answering.
	down.Store(true)
	if err := os.RemoveAll(filepath.Join(root, "W")); err != nil {
		t.Fatal(err)
	}
	code, _, stderr = execCLI(t, "generate", "--project-root", root, "--config", srv.URL+"/colorset.toml")
	if code != 0 {
		t.Fatalf("cached run exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stderr, "using cache") {
		t.Errorf("stderr = %q, want cache warning", stderr)
	}
	if _, err := os.Stat(accentPath(root, "W")); err != nil {
		t.Errorf("expected accent colorset from cached manifest: %v", err)
	}
}

func TestGenerateLogFile(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `version = 2

[log]
level = "debug"
file = "logs/colorset.log"
max_size_mb = 1

[[targets]]
container = "W"

[targets.accent]
color = "red"
`)
	if code, _, stderr := execCLI(t, "generate", "--project-root", root); code != 0 {
		t.Fatalf("generate: %s", stderr)
	}
	data, err := os.ReadFile(filepath.Join(root, "logs", "colorset.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "wrote colorset") {
		t.Errorf("log file = %q, want write record", data)
	}
}

// ///////////////////////////////////////////////
// watch
// ///////////////////////////////////////////////

func TestWatchRegeneratesOnChange(t *testing.T) {
	root := t.TempDir()
	manifest := writeManifest(t, root, "version = 2\n[[targets]]\ncontainer = \"W\"\n[targets.accent]\ncolor = \"red\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan int, 1)
	var stdout, stderr bytes.Buffer
	go func() {
		done <- run(ctx, []string{"watch", "--project-root", root}, &stdout, &stderr)
	}()

	waitFor := func(what string, cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if cond() {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		cancel()
		<-done
		t.Fatalf("timed out waiting for %s; stderr:\n%s", what, stderr.String())
	}

	redOrBlue := func(red float64) func() bool {
		return func() bool {
			data, err := os.ReadFile(accentPath(root, "W"))
			if err != nil {
				return false
			}
			var d catalog.Descriptor
			if json.Unmarshal(data, &d) != nil || len(d.Colors) == 0 {
				return false
			}
			return d.Colors[0].Color.Components.Red == red
		}
	}

	waitFor("initial generation", redOrBlue(1))

	if err := os.WriteFile(manifest, []byte("version = 2\n[[targets]]\ncontainer = \"W\"\n[targets.accent]\ncolor = \"blue\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor("regeneration", redOrBlue(0))

	cancel()
	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("watch exit code = %d, stderr:\n%s", code, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchRejectsURL(t *testing.T) {
	code, _, stderr := execCLI(t, "watch", "--project-root", t.TempDir(), "--config", "https://example.com/c.toml")
	if code != 1 || !strings.Contains(stderr, "local manifest") {
		t.Errorf("watch URL = (%d, %q), want exit 1 local manifest error", code, stderr)
	}
}
