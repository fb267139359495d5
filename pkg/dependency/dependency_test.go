package dependency

import (
	"testing"

	"github.com/glorpus-work/fetchy/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelationship(t *testing.T) {
	tests := []struct {
		input    string
		op       Operator
		upstream string
		epoch    uint64
	}{
		{"(>= 2:12-alpha-3.2)", LaterOrEqual, "12-alpha", 2},
		{"(     = 3   )", Equal, "3", 0},
		{"(= 3)", Equal, "3", 0},
		{"(<< 1.0~rc1)", StrictlyEarlier, "1.0~rc1", 0},
		{"(>>2.0)", StrictlyLater, "2.0", 0},
		{"(< 4)", EarlierOrEqual, "4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rel, err := ParseRelationship(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.op, rel.Op)
			assert.Equal(t, tt.upstream, rel.Version.Upstream)
			assert.Equal(t, tt.epoch, rel.Version.Epoch)
		})
	}
}

func TestParseRelationship_Errors(t *testing.T) {
	for _, input := range []string{"(>=)", "(~= 1.0)", "()", "(1.0)"} {
		_, err := ParseRelationship(input)
		assert.ErrorIs(t, err, ErrParse, "input %q", input)
	}
}

func TestRelationship_SatisfiedBy(t *testing.T) {
	v := version.MustParse("2.36-9")
	tests := []struct {
		rel  string
		want bool
	}{
		{"(>= 2.34)", true},
		{"(<< 2.36)", false},
		{"(<= 2.36-9)", true},
		{"(= 2.36-9)", true},
		{"(= 2.36)", false},
		{"(>> 2.36-9)", false},
		{"(>> 1:0)", false},
	}
	for _, tt := range tests {
		rel, err := ParseRelationship(tt.rel)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rel.SatisfiedBy(v), tt.rel)
	}
}

func TestParse_Name(t *testing.T) {
	tests := []struct {
		input     string
		name      string
		condition string
		qualifier string
		hasRel    bool
	}{
		{"python3", "python3", "", "", false},
		{"python3 (= 3)", "python3", "", "", true},
		{"python3 [] (= 3)", "python3", "", "", true},
		{"  libc6 (>= 2.34) [amd64 arm64]", "libc6", "amd64 arm64", "", true},
		// the multiarch qualifier is split off so the name matches repository keys
		{"perl:any", "perl", "", "any", false},
		{"libgcc-s1:amd64", "libgcc-s1", "", "amd64", false},
		{"python3:any (>= 3.9~)", "python3", "", "any", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(Depends, tt.input)
			require.NoError(t, err)
			s, ok := d.(Simple)
			require.True(t, ok, "expected a simple dependency")
			assert.Equal(t, Depends, s.Kind)
			assert.Equal(t, tt.name, s.Name)
			assert.Equal(t, tt.condition, s.Condition)
			assert.Equal(t, tt.qualifier, s.ArchQualifier)
			assert.Equal(t, tt.hasRel, s.Relationship != nil)
			assert.Equal(t, []string{tt.name}, s.Resolve())
		})
	}
}

func TestParse_Alternative(t *testing.T) {
	tests := []struct {
		input string
		names []string
	}{
		{"java | python3", []string{"java", "python3"}},
		{"java | python3 (>= 3)", []string{"java", "python3"}},
		{"java | python3 [] (= 3)", []string{"java", "python3"}},
		{"mawk | gawk | original-awk", []string{"mawk", "gawk", "original-awk"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := Parse(PreDepends, tt.input)
			require.NoError(t, err)
			alt, ok := d.(Alternative)
			require.True(t, ok, "expected an alternative dependency")
			assert.Equal(t, PreDepends, alt.Kind)
			assert.Equal(t, tt.names, alt.Resolve())
			for _, s := range alt.Alternatives {
				assert.Equal(t, PreDepends, s.Kind)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "(>= 1.0)", "libc6 (>= 2.34", "foo [amd64", "a | | b"} {
		_, err := Parse(Depends, input)
		assert.ErrorIs(t, err, ErrParse, "input %q", input)
	}
}

func TestParseList(t *testing.T) {
	deps, err := ParseList(Depends, "")
	require.NoError(t, err)
	assert.Empty(t, deps)

	deps, err = ParseList(Depends, "libc6 (>= 2.34), libtinfo6 (>= 6), debianutils (>= 5.6-0.1) | foo,")
	require.NoError(t, err)
	require.Len(t, deps, 3)
	assert.Equal(t, []string{"libc6"}, deps[0].Resolve())
	assert.Equal(t, []string{"libtinfo6"}, deps[1].Resolve())
	assert.Equal(t, []string{"debianutils", "foo"}, deps[2].Resolve())

	_, err = ParseList(Depends, "ok, broken (>=")
	assert.ErrorIs(t, err, ErrParse)
}

func TestString(t *testing.T) {
	deps, err := ParseList(Depends, "libc6 (>= 2.34), perl:any, awk | mawk [amd64]")
	require.NoError(t, err)
	assert.Equal(t, "libc6 (>= 0:2.34-0), perl:any, awk | mawk [amd64]", JoinList(deps))

	again, err := ParseList(Depends, JoinList(deps))
	require.NoError(t, err)
	assert.Equal(t, deps, again)
}
