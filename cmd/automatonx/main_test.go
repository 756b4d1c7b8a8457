package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuiltInExample(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-words", "ab,b", "-dot"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"q0 -> a q1 | a q2",
		"The automaton is non-deterministic.",
		"δ(q1q2, b) = {q1q3}",
		`"ab" accepted: true`,
		`"b" accepted: false`,
		"digraph Automaton {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRunSeparatorAndSave(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-sep", ",", "-save-dir", dir, "-format", "json"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "δ(q1,q2, b) = {q1,q3}") {
		t.Errorf("expected separated composite names:\n%s", stdout.String())
	}
	for _, name := range []string{"lab.json", "lab-dfa.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be saved: %v", name, err)
		}
	}
}

func TestRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parity.yaml")
	doc := `id: parity
states: [even, odd]
alphabet: ["1"]
start: even
accept: [even]
transitions:
  - {from: even, symbol: "1", to: [odd]}
  - {from: odd, symbol: "1", to: [even]}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-file", path, "-words", "11,1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "The automaton is deterministic.") {
		t.Errorf("expected deterministic classification:\n%s", out)
	}
	if !strings.Contains(out, `"11" accepted: true`) || !strings.Contains(out, `"1" accepted: false`) {
		t.Errorf("unexpected membership output:\n%s", out)
	}
}

func TestRunAmbiguousNamesFallBackToSeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.yaml")
	doc := `id: digits
states: ["0", "1", "2", "12"]
alphabet: [a, b]
start: "0"
accept: ["12"]
transitions:
  - {from: "0", symbol: a, to: ["1", "2"]}
  - {from: "0", symbol: b, to: ["12"]}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-file", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "δ(0, a) = {1,2}") || !strings.Contains(stdout.String(), "δ(0, b) = {12}") {
		t.Errorf("expected separated composite names:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Reduced grammar:\n0 -> b 12\n12 -> ε\n") {
		t.Errorf("expected dead-end states 1 and 2 to be reduced away:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "composite names collide") {
		t.Errorf("expected a warning about the retry:\n%s", stderr.String())
	}

	stdout.Reset()
	stderr.Reset()
	if code := run(context.Background(), []string{"-file", path, "-sep", "+"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d with explicit separator", code)
	}
	if !strings.Contains(stdout.String(), "δ(0, a) = {1+2}") {
		t.Errorf("expected explicit separator to be used:\n%s", stdout.String())
	}
}

func TestRunMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"id":"bad","states":["a"],"alphabet":[],"start":"z"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-file", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "malformed automaton") {
		t.Errorf("expected malformed error in log:\n%s", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no analysis output, got:\n%s", stdout.String())
	}
}

func TestRunScan(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-scan", "3 + 4"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	want := "NUMBER(3)\nADD\nNUMBER(4)\nEND\n"
	if stdout.String() != want {
		t.Errorf("got %q, want %q", stdout.String(), want)
	}
}

func TestRunScanInvalid(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-scan", "(3 +"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "OPEN_BRACE\nNUMBER(3)\nADD\nEND\n") {
		t.Errorf("tokens missing from output:\n%s", out)
	}
	if !strings.Contains(out, "invalid: unbalanced parentheses") {
		t.Errorf("expected validation error, got:\n%s", out)
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-nope"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}
