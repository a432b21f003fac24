package cli

import (
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":               {err: nil, want: ExitSuccess},
		"plain error":       {err: errors.New("boom"), want: ExitFailure},
		"argument error":    {err: clierrors.UnknownTool("zed", nil, nil), want: ExitInvalidArguments},
		"config error":      {err: clierrors.ConfigLoadFailed("/x", errors.New("bad")), want: ExitConfigError},
		"filesystem error":  {err: clierrors.FilesystemFailure(2, errors.New("denied")), want: ExitPartialFailure},
		"runtime error":     {err: clierrors.NewRuntimeError("checks failed"), want: ExitFailure},
		"wrapped cli error": {err: fmt.Errorf("running: %w", clierrors.ProjectNotFound("/x", nil)), want: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
