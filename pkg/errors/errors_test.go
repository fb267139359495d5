package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{name: "nil error stays nil", err: nil, msg: "loading index"},
		{name: "sentinel is wrapped", err: ErrDownloadFailed, msg: "fetching libc6", expected: "fetching libc6: download failed"},
		{name: "empty message", err: ErrInvalidPath, msg: "", expected: ": invalid path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	base := errors.New("short read")

	assert.NoError(t, Wrapf(nil, "member %s", "data.tar.xz"))

	err := Wrapf(base, "member %s of %s", "data.tar.xz", "bash_5.2-1_amd64.deb")
	require.Error(t, err)
	assert.Equal(t, "member data.tar.xz of bash_5.2-1_amd64.deb: short read", err.Error())
	assert.ErrorIs(t, err, base)

	nested := Wrap(Wrapf(ErrConfigParse, "line %d", 4), "loading blueprint")
	assert.ErrorIs(t, nested, ErrConfigParse)
}
