package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"repairtree/format"
	"repairtree/grammar"
	"repairtree/internal/fixture"
)

func writeInput(t *testing.T, dir, input string) (seqPath, rulesPath string) {
	t.Helper()
	seq, rules := fixture.RePair([]byte(input)).Files()
	seqPath = filepath.Join(dir, "in.C")
	rulesPath = filepath.Join(dir, "in.R")
	if err := os.WriteFile(seqPath, seq, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rulesPath, rules, 0644); err != nil {
		t.Fatal(err)
	}
	return seqPath, rulesPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVisualize(t *testing.T) {
	dir := t.TempDir()
	seq, rules := writeInput(t, dir, "abcabcabc")
	prefix := filepath.Join(dir, "tree")

	out, err := run(t, "-s", seq, "-r", rules, "-p", "repair", "-o", prefix, "-e", "dot,svg", "--print_grammar", "--print_sequence")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{"--- Parsed Grammar Rules ---", "--- Loaded Compressed Sequence ---"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, ext := range []string{".dot", ".svg"} {
		if _, err := os.Stat(prefix + ext); err != nil {
			t.Errorf("%s not written: %v", ext, err)
		}
	}
}

func TestVisualizeNoImage(t *testing.T) {
	dir := t.TempDir()
	seq, rules := writeInput(t, dir, "mississippi")
	prefix := filepath.Join(dir, "tree")

	out, err := run(t, "-s", seq, "-r", rules, "-p", "rlz-repair", "-o", prefix, "--no_image", "--dump_tree")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Children") {
		t.Errorf("tree dump missing node fields:\n%s", out)
	}
	if _, err := os.Stat(prefix + ".png"); !os.IsNotExist(err) {
		t.Errorf("image written with --no_image: %v", err)
	}
}

func TestVisualizeErrors(t *testing.T) {
	dir := t.TempDir()
	seq, rules := writeInput(t, dir, "abab")

	t.Run("rerepair", func(t *testing.T) {
		_, err := run(t, "-s", seq, "-r", rules, "-p", "rerepair", "--no_image")
		var uerr *format.UnsupportedProgramError
		if !errors.As(err, &uerr) {
			t.Errorf("error = %v, want *format.UnsupportedProgramError", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.R")
		if err := os.WriteFile(bad, []byte{9, 0, 0}, 0644); err != nil {
			t.Fatal(err)
		}
		_, err := run(t, "-s", seq, "-r", bad, "-p", "repair", "--no_image")
		var merr *grammar.MalformedInputError
		if !errors.As(err, &merr) {
			t.Fatalf("error = %v, want *grammar.MalformedInputError", err)
		}
		if merr.Source != bad {
			t.Errorf("Source = %q, want %q", merr.Source, bad)
		}
	})
}

func TestAccess(t *testing.T) {
	dir := t.TempDir()
	const input = "how much wood would a woodchuck chuck"
	seq, rules := writeInput(t, dir, input)
	prefix := filepath.Join(dir, "ra")

	out, err := run(t, "access", "-s", seq, "-r", rules, "-p", "repair", "-o", prefix, "-i", "200", "--depth")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Maximum parse tree depth:") {
		t.Errorf("depth statistics missing:\n%s", out)
	}

	data, err := os.ReadFile(prefix + ".txt")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 200 {
		t.Fatalf("%d result lines, want 200", len(lines))
	}
	for _, l := range lines {
		head, value, ok := strings.Cut(l, " value: ")
		if !ok {
			t.Fatalf("bad result line %q", l)
		}
		pos, err := strconv.Atoi(strings.TrimPrefix(head, "pos: "))
		if err != nil {
			t.Fatalf("bad result line %q: %v", l, err)
		}
		if want := grammar.T(int(input[pos])).Label(); value != want {
			t.Errorf("line %q: value = %s, want %s", l, value, want)
		}
	}
}
