package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/Xunop/aldiaa/internal/version"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ALDIAA_DATA", t.TempDir())
	t.Setenv("ALDIAA_LOGIN_DELAY_MS", "0")
	t.Setenv("ALDIAA_SYNC_DELAY_MS", "0")
	t.Setenv("ALDIAA_LOG_LEVEL", "error")
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

var addedRe = regexp.MustCompile(`Added book (\S+)`)

func TestBooksCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "books", "add", "--title", "Clean Code", "--author", "Martin", "--volumes", "0")
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	m := addedRe.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("unexpected add output: %s", out)
	}
	id := m[1]

	out, err = run(t, "books", "add", "--title", " clean code ")
	if err == nil || !strings.Contains(out, "--force") {
		t.Fatalf("expected duplicate error, got %v\n%s", err, out)
	}
	if _, err := run(t, "books", "add", "--title", " clean code ", "--force"); err != nil {
		t.Fatalf("forced add failed: %v", err)
	}

	if out, err := run(t, "books", "edit", id, "--volumes", "3"); err != nil {
		t.Fatalf("edit failed: %v\n%s", err, out)
	}

	out, err = run(t, "books", "list", "--author", "mart")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "Showing 1 of 1 matching books (2 in total)") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	out, err = run(t, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	// Edited volumes are kept, the title is untouched
	if !strings.Contains(out, "Books: 2") || !strings.Contains(out, "Volumes: 4") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}

	if _, err := run(t, "books", "delete", id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := run(t, "books", "delete", id); err != nil {
		t.Fatalf("deleting twice should succeed: %v", err)
	}
	if _, err := run(t, "books", "edit", id, "--title", "x"); err == nil {
		t.Fatal("editing a deleted book should fail")
	}
}

func TestSessionCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "whoami")
	if err != nil || !strings.Contains(out, "Not logged in") {
		t.Fatalf("unexpected whoami: %v\n%s", err, out)
	}

	out, err = run(t, "login", "reader@example.com", "--name", "Reader")
	if err != nil || !strings.Contains(out, "Logged in as Reader <reader@example.com>") {
		t.Fatalf("unexpected login: %v\n%s", err, out)
	}
	out, _ = run(t, "whoami")
	if !strings.Contains(out, "reader@example.com") {
		t.Fatalf("session not kept: %s", out)
	}

	out, err = run(t, "logout")
	if err != nil || !strings.Contains(out, "Logged out") {
		t.Fatalf("unexpected logout: %v\n%s", err, out)
	}
	out, _ = run(t, "whoami")
	if !strings.Contains(out, "Not logged in") {
		t.Fatalf("session not cleared: %s", out)
	}

	if _, err := run(t, "login"); err == nil {
		t.Fatal("login without email or provider should fail")
	}
	out, err = run(t, "login", "--provider", "google")
	if err != nil || !strings.Contains(out, "user@gmail.com") {
		t.Fatalf("unexpected provider login: %v\n%s", err, out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version.GetCurrentVersion() {
		t.Fatalf("unexpected version output %q", out)
	}
}
