package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "pokedexter")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Gruvbox\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Gruvbox" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Gruvbox")
	}
}

func TestLoad_FileContents(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Prefs
	}{
		{name: "theme and search", content: "theme = \"Gruvbox\"\nlast_search = \"pika\"\n", want: Prefs{Theme: "Gruvbox", LastSearch: "pika"}},
		{name: "empty theme", content: "theme = \"\"\n", want: Prefs{Theme: defaultTheme}},
		{name: "search trimmed", content: "last_search = \"  char \"\n", want: Prefs{Theme: defaultTheme, LastSearch: "char"}},
		{name: "malformed toml", content: "not valid toml {{{\n", want: Prefs{Theme: defaultTheme}},
		{name: "unknown keys ignored", content: "theme = \"Pokedex\"\nvolume = 3\n", want: Prefs{Theme: "Pokedex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefsFile := filepath.Join(t.TempDir(), "custom.toml")
			if err := os.WriteFile(prefsFile, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := Load(prefsFile)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{Theme: "Gruvbox"}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Gruvbox" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Gruvbox")
	}
}

func TestUpdate_KeepsOtherFields(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(prefsFile, Prefs{Theme: "Gruvbox", LastSearch: "pika"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := Update(prefsFile, func(p *Prefs) { p.LastSearch = "char" }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Gruvbox" || p.LastSearch != "char" {
		t.Fatalf("prefs = %+v, want Theme=Gruvbox LastSearch=char", p)
	}
}

func TestSave_ReplacesWithoutLeavingTempFiles(t *testing.T) {
	dir := t.TempDir()
	prefsFile := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Pokedex\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := Save(prefsFile, Prefs{Theme: " Gruvbox ", LastSearch: "eevee"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "prefs.toml" {
		t.Fatalf("dir entries = %v, want only prefs.toml", entries)
	}

	p, _ := Load(prefsFile)
	if p != (Prefs{Theme: "Gruvbox", LastSearch: "eevee"}) {
		t.Fatalf("prefs = %+v", p)
	}
}

func TestDefault(t *testing.T) {
	if got := Default(); got.Theme != defaultTheme || got.LastSearch != "" {
		t.Fatalf("Default() = %+v", got)
	}
}
