package archive

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/glorpus-work/fetchy/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeb(plain bool) testutil.Deb {
	return testutil.Deb{
		Plain: plain,
		Control: []testutil.File{
			testutil.Dir("./"),
			{Name: "./control", Body: "Package: hello\n"},
			{Name: "./postinst", Body: "#!/bin/sh\n", Mode: 0o755},
		},
		Data: []testutil.File{
			testutil.Dir("./"),
			testutil.Dir("./usr/"),
			testutil.Dir("./usr/bin/"),
			{Name: "./usr/bin/hello", Body: "binary", Mode: 0o755},
			testutil.Symlink("./usr/bin/hi", "hello"),
		},
	}
}

func TestWalkDeb_Members(t *testing.T) {
	raw := testutil.BuildDeb(t, sampleDeb(false))

	var names []string
	err := WalkDeb(bytes.NewReader(raw), func(name string, r io.Reader) error {
		names = append(names, name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"debian-binary", "control.tar.gz", "data.tar.gz"}, names)
}

func TestWalkDeb_Corrupt(t *testing.T) {
	err := WalkDeb(bytes.NewReader([]byte("definitely not an ar archive")), func(string, io.Reader) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDeb_Walk(t *testing.T) {
	for _, plain := range []bool{false, true} {
		raw := testutil.BuildDeb(t, sampleDeb(plain))

		var control, data []string
		var body string
		d := Deb{
			Control: func(name string, r io.Reader) error {
				return WalkTar(context.Background(), name, r, func(_ context.Context, e Entry) error {
					control = append(control, e.Name())
					return nil
				})
			},
			Data: func(name string, r io.Reader) error {
				return WalkTar(context.Background(), name, r, func(_ context.Context, e Entry) error {
					data = append(data, e.Name())
					if e.Name() == "./usr/bin/hello" {
						rc, err := e.Open()
						if err != nil {
							return err
						}
						defer func() { _ = rc.Close() }()
						b, err := io.ReadAll(rc)
						body = string(b)
						return err
					}
					return nil
				})
			},
		}
		require.NoError(t, d.Walk(bytes.NewReader(raw)), "plain=%v", plain)
		assert.Equal(t, []string{"./", "./control", "./postinst"}, control)
		assert.Equal(t, []string{"./", "./usr/", "./usr/bin/", "./usr/bin/hello", "./usr/bin/hi"}, data)
		assert.Equal(t, "binary", body)
	}
}

func TestDeb_WalkMissingData(t *testing.T) {
	deb := sampleDeb(false)
	deb.SkipData = true
	raw := testutil.BuildDeb(t, deb)

	err := Deb{}.Walk(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrMemberNotFound)
	assert.Contains(t, err.Error(), DataPrefix)
}

func TestEntry_IsDir(t *testing.T) {
	raw := testutil.BuildDeb(t, sampleDeb(true))
	dirs := map[string]bool{}
	err := Deb{Data: func(name string, r io.Reader) error {
		return WalkTar(context.Background(), name, r, func(_ context.Context, e Entry) error {
			dirs[e.Name()] = e.IsDir()
			return nil
		})
	}}.Walk(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.True(t, dirs["./usr/"])
	assert.False(t, dirs["./usr/bin/hello"])
	assert.False(t, dirs["./usr/bin/hi"])
}
