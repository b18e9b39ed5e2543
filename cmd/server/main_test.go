package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	t.Parallel()
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "token"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "sideways"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestTokenRequiresValidUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing flag", args: []string{"token"}},
		{name: "not a uuid", args: []string{"token", "--user", "bob"}},
		{name: "nil uuid", args: []string{"token", "--user", "00000000-0000-0000-0000-000000000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := newRootCmd()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			assert.Error(t, root.Execute())
		})
	}
}

func TestRunMigrationsUnknownCommand(t *testing.T) {
	t.Parallel()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = runMigrations(context.Background(), db, "redo-everything", slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "up, down, status, version")
}

func TestSlogGooseLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := &slogGooseLogger{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	l.Printf("OK   %s (%s)\n", "00001_create_courses.sql", "12ms")
	l.Fatalf("failed to apply %s", "00002_create_lessons.sql")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "00001_create_courses.sql")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "failed to apply 00002_create_lessons.sql")
}
