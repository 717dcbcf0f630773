package loader

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func TestTOMLLoader_LoadFrom(t *testing.T) {
	fsys := MapFS{FS: fstest.MapFS{
		"config.toml": {Data: []byte("[tree]\nindentation = 4\nexpandNew = false\n")},
	}}

	got, err := NewTOMLLoaderWithFS(fsys, "config.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]any{
		"tree": map[string]any{
			"indentation": int64(4),
			"expandNew":   false,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	fsys := MapFS{FS: fstest.MapFS{}}

	got, err := NewTOMLLoaderWithFS(fsys, "absent.toml").Load()
	if err != nil || got != nil {
		t.Errorf("Load() = %v, %v, want nil, nil", got, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	fsys := MapFS{FS: fstest.MapFS{
		"bad.toml": {Data: []byte("[tree\nindentation = 4\n")},
	}}

	_, err := NewTOMLLoaderWithFS(fsys, "bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if perr.Path != "bad.toml" {
		t.Errorf("ParseError.Path = %q, want bad.toml", perr.Path)
	}
	if perr.Line < 1 {
		t.Errorf("ParseError.Line = %d, want a position", perr.Line)
	}
	if !strings.Contains(perr.Error(), "bad.toml") {
		t.Errorf("Error() = %q, want path mentioned", perr.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	got, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`[logging]
level = "warn"`))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	logging, _ := got["logging"].(map[string]any)
	if logging["level"] != "warn" {
		t.Errorf("logging.level = %v, want warn", logging["level"])
	}
}

func TestYAMLLoader_LoadFrom(t *testing.T) {
	fsys := MapFS{FS: fstest.MapFS{
		"config.yaml": {Data: []byte("logging:\n  level: debug\ntree:\n  splitterPosition: 30\n  headerVisible: false\n")},
	}}

	got, err := NewYAMLLoaderWithFS(fsys, "config.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"tree": map[string]any{
			"splitterPosition": 30,
			"headerVisible":    false,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("tree: [unterminated"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadFromReader() error = %v, want *ParseError", err)
	}
}

func TestYAMLLoader_NonStringKeys(t *testing.T) {
	got, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("tree:\n  1: one\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	tree, ok := got["tree"].(map[string]any)
	if !ok {
		t.Fatalf("tree = %T, want map[string]any", got["tree"])
	}
	if tree["1"] != "one" {
		t.Errorf("tree[\"1\"] = %v, want one", tree["1"])
	}
}

func TestEnvLoader(t *testing.T) {
	t.Setenv("PBTEST_LOG_LEVEL", "debug")
	t.Setenv("PBTEST_TREE_INDENTATION", "6")
	t.Setenv("PBTEST_TREE_ROOT_DECORATED", "off")
	t.Setenv("PBTEST_TREE_SPLITTER_POSITION", "12")

	l := NewEnvLoaderWithMapping("PBTEST_", map[string]string{"PBTEST_LOG_LEVEL": "logging.level"})
	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"tree": map[string]any{
			"indentation":      int64(6),
			"rootDecorated":    false,
			"splitterPosition": int64(12),
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("PROPBROWSER_")
	tests := []struct {
		env  string
		want string
	}{
		{"PROPBROWSER_TREE_INDENTATION", "tree.indentation"},
		{"PROPBROWSER_TREE_MARK_PROPERTIES_WITHOUT_VALUE", "tree.markPropertiesWithoutValue"},
		{"PROPBROWSER_TREE", "tree"},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"1", int64(1)},
		{"-3", int64(-3)},
		{"2.5", 2.5},
		{"debug", "debug"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"tree":    map[string]any{"indentation": 2, "expandNew": true},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"tree":    map[string]any{"indentation": 4},
		"logging": "flat",
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"tree":    map[string]any{"indentation": 4, "expandNew": true},
		"logging": "flat",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %v, want %v", got, want)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", got)
	}
}
