package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCLI executes the root command with fresh flag state.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	cfgFile, rootDir, outFormat, verbose = "", "", "", false
	fieldName, fieldCode, noProgress, keysPrefix = "", 0, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestSplit_Text(t *testing.T) {
	out, err := runCLI(t, "", "split", "-d", t.TempDir(), "abc123def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "\"abc123def\"\tother:\"abc\" digits:\"123\" other:\"def\"\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestSplit_StdinJSON(t *testing.T) {
	out, err := runCLI(t, "2023-10-05\n42\n", "split", "-d", t.TempDir(), "-f", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var results []struct {
		Input  string `json:"input"`
		Tokens []struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(results[0].Tokens) != 5 || results[0].Tokens[1].Text != "-" || results[0].Tokens[1].Kind != "other" {
		t.Errorf("unexpected tokens for date: %+v", results[0].Tokens)
	}
	if len(results[1].Tokens) != 1 || results[1].Tokens[0].Kind != "digits" {
		t.Errorf("unexpected tokens for 42: %+v", results[1].Tokens)
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"day by name", []string{"--field", "day", "1999-12-31"}, "31\n", false},
		{"month by code", []string{"--code", "2", "2024-03-15"}, "3\n", false},
		{"several dates", []string{"--field", "year", "2024-03-15", "1999-12-31"}, "2024\n1999\n", false},
		{"bad code", []string{"--code", "9", "2024-03-15"}, "", true},
		{"bad name", []string{"--field", "week", "2024-03-15"}, "", true},
		{"no selector", []string{"2024-03-15"}, "", true},
		{"bad date", []string{"--field", "day", "15/03/2024"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"field", "-d", t.TempDir()}, tt.args...)
			out, err := runCLI(t, "", args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestScanThenKeys(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img2.jpg", "img10.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runCLI(t, "", "scan", "-d", dir, "--no-progress")
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Files keyed:    2") {
		t.Errorf("expected 2 files keyed, got:\n%s", out)
	}

	out, err = runCLI(t, "", "keys", "-d", dir, "-f", "json")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	var views []struct {
		Path string `json:"path"`
		Date string `json:"date"`
	}
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(views))
	}

	out, err = runCLI(t, "", "keys", "-d", dir, "--prefix", "img10")
	if err != nil {
		t.Fatalf("keys with prefix failed: %v", err)
	}
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, `digits:"10"`) {
		t.Errorf("expected only img10.jpg, got:\n%s", out)
	}
}

func TestKeys_PathArgument(t *testing.T) {
	photos := t.TempDir()
	elsewhere := t.TempDir()
	if err := os.WriteFile(filepath.Join(photos, "dsc0042.raw"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if out, err := runCLI(t, "", "scan", photos, "-d", elsewhere, "--no-progress"); err != nil {
		t.Fatalf("scan failed: %v\n%s", err, out)
	}

	out, err := runCLI(t, "", "keys", photos, "-d", elsewhere)
	if err != nil {
		t.Fatalf("keys with path failed: %v", err)
	}
	if !strings.Contains(out, `digits:"0042"`) {
		t.Errorf("expected key for dsc0042.raw, got:\n%s", out)
	}

	if _, err := runCLI(t, "", "keys", "-d", elsewhere); err == nil {
		t.Error("expected no store in the working directory")
	}
}

func TestSplit_RepeatedLines(t *testing.T) {
	out, err := runCLI(t, "v10\nv10\nv9\n", "split", "-d", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "\"v10\"\tother:\"v\" digits:\"10\"\n" +
		"\"v10\"\tother:\"v\" digits:\"10\"\n" +
		"\"v9\"\tother:\"v\" digits:\"9\"\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestKeys_NoStore(t *testing.T) {
	if _, err := runCLI(t, "", "keys", "-d", t.TempDir()); err == nil {
		t.Error("expected error when no scan has run")
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(0); got != "<1s" {
		t.Errorf("expected <1s, got %s", got)
	}
	if got := formatDuration(90 * 1e9); got != "1m30s" {
		t.Errorf("expected 1m30s, got %s", got)
	}
}
