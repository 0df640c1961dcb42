package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"fleet-tracker/core/poller"
	"fleet-tracker/core/reconcile"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{"Flag", "", true, true},
		{"Typed", "yes\n", false, true},
		{"TypedNoNewline", "yes", false, true},
		{"Declined", "no\n", false, false},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirmDestructiveAction(strings.NewReader(tt.input), &out, tt.yes)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestSummarize(t *testing.T) {
	ok := []poller.Outcome{
		{Zone: "BERLIN", Result: &reconcile.Result{Inserted: 3}},
		{Zone: "PARIS", Result: &reconcile.Result{Inserted: 1}},
	}
	assert.NoError(t, summarize(zap.NewNop(), ok))

	failed := append(ok, poller.Outcome{Zone: "ROME", Err: errors.New("boom")})
	assert.EqualError(t, summarize(zap.NewNop(), failed), "1 of 3 zones failed")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"start", "reconcile", "zones", "migrate"} {
		assert.True(t, names[want], want)
	}
}
