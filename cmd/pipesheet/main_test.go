package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"pipesheet-cli/pkg/models"
)

func TestBuildRequestFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		flags    map[string]string
		expected *models.SheetRequest
		wantErr  bool
	}{
		{
			name:     "no arguments",
			expected: &models.SheetRequest{},
		},
		{
			name:     "keywords are joined",
			args:     []string{"folder", "gzip"},
			expected: &models.SheetRequest{Keyword: "folder gzip"},
		},
		{
			name: "session overrides",
			args: []string{"tunnel"},
			flags: map[string]string{
				"relay":       "https://relay.example",
				"fragment":    "abc",
				"server-port": "8080",
				"client-port": "18080",
				"listener":    "socat",
			},
			expected: &models.SheetRequest{
				Keyword:    "tunnel",
				RelayURL:   "https://relay.example",
				Fragment:   "abc",
				ServerPort: "8080",
				ClientPort: "18080",
				Listener:   "socat",
			},
		},
		{
			name: "output flags",
			flags: map[string]string{
				"config": "/tmp/pipesheet.toml",
				"format": "markdown",
				"target": "file:/tmp/sheet.md",
			},
			expected: &models.SheetRequest{
				ConfigPath: "/tmp/pipesheet.toml",
				Format:     "markdown",
				Target:     "file:/tmp/sheet.md",
			},
		},
		{
			name:     "explicit empty fragment",
			flags:    map[string]string{"fragment": ""},
			expected: &models.SheetRequest{EmptyFragment: true},
		},
		{
			name:     "from link",
			flags:    map[string]string{"from-link": "https://host/#?q=folder"},
			expected: &models.SheetRequest{FromLink: "https://host/#?q=folder"},
		},
		{
			name:    "keywords and link conflict",
			args:    []string{"zip"},
			flags:   map[string]string{"from-link": "#?q=folder"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}

			// Add flags to command
			for _, name := range []string{"config", "relay", "fragment", "server-port", "client-port", "listener", "format", "target", "from-link"} {
				cmd.Flags().String(name, "", "")
			}

			// Set flag values
			for flag, value := range tt.flags {
				if err := cmd.Flags().Set(flag, value); err != nil {
					t.Fatalf("failed to set %s: %v", flag, err)
				}
			}

			result, err := buildRequestFromFlags(cmd, tt.args)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("buildRequestFromFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildRequestFromFlags_MissingFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")

	if _, err := buildRequestFromFlags(cmd, nil); err == nil {
		t.Errorf("Expected error for unregistered flags, got nil")
	}
}

func TestCommandTree(t *testing.T) {
	want := []string{"browse", "link", "list", "pick", "show", "version"}

	var got []string
	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		got = append(got, c.Name())
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}

	for _, flag := range []string{"relay", "fragment", "server-port", "client-port", "listener", "format", "target", "from-link", "config", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}
