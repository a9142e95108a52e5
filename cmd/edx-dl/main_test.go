package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/patrickprogramme/edxdl/internal/app"
	"github.com/patrickprogramme/edxdl/internal/courseware"
	"github.com/patrickprogramme/edxdl/internal/fetch"
	"github.com/patrickprogramme/edxdl/internal/session"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, exitOK},
		{"interrupt", fmt.Errorf("week page: %w", context.Canceled), exitOK},
		{"missing credentials", app.ErrMissingCredentials, exitAuth},
		{"auth", fmt.Errorf("wrapped: %w", &session.AuthError{Reason: "Wrong Email or Password."}), exitAuth},
		{"selection", &courseware.InvalidSelectionError{Choice: "x", Reason: "not enrolled"}, exitInvalidInput},
		{"structure", &courseware.StructureError{Page: "courseware", Reason: "nav missing"}, exitError},
		{"network", &fetch.NetworkError{URL: "https://x.org", Status: 500, Err: fetch.ErrStatus}, exitError},
		{"other", errors.New("boom"), exitError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := exitStatus(tc.err)
			if code != tc.code {
				t.Fatalf("exitStatus(%v) = %d; want %d", tc.err, code, tc.code)
			}
		})
	}

	_, msg := exitStatus(&session.AuthError{Reason: "Too many attempts"})
	if msg != "Too many attempts" {
		t.Fatalf("auth message = %q", msg)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CLIFlags
	}{
		{
			name: "no arguments is interactive",
			args: nil,
			want: app.CLIFlags{ConfigPath: "edx-dl.yaml", Interactive: true},
		},
		{
			name: "short aliases",
			args: []string{"-u", "me", "-p", "pw", "-f", "22", "-s", "-o", "out", "-course-url", "https://x.org/courses/A/1/1/info"},
			want: app.CLIFlags{
				ConfigPath: "edx-dl.yaml",
				Username:   "me", Password: "pw", Format: "22", Subtitles: true, OutputDir: "out",
				CourseURL: "https://x.org/courses/A/1/1/info",
			},
		},
		{
			name: "long names",
			args: []string{"-username", "me", "-password", "pw", "-with-subtitles", "-weeks", "all", "-config", "/etc/e.yaml"},
			want: app.CLIFlags{
				ConfigPath: "/etc/e.yaml",
				Username:   "me", Password: "pw", Subtitles: true, Weeks: "all",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			got, err := parseFlags(fs, tc.args)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if *got != tc.want {
				t.Fatalf("parseFlags = %+v; want %+v", *got, tc.want)
			}
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	for _, args := range [][]string{{"-nope"}, {"-u", "me", "extra"}} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		if _, err := parseFlags(fs, args); err == nil {
			t.Errorf("parseFlags(%v): expected error", args)
		}
	}
}

func TestRun_InterruptedDuringStartup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfgPath := filepath.Join(t.TempDir(), "edx-dl.yaml")
	code := run(ctx, []string{
		"-config", cfgPath,
		"-u", "me@example.org",
		"-p", "secret",
		"-course-url", "http://127.0.0.1:1/courses/OrgX/101/2020/info",
	})
	if code != exitOK {
		t.Fatalf("run = %d; want %d", code, exitOK)
	}
}
