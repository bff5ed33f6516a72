package kernel

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreter_TrailingExpressionYieldsValue(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "x := 2\nx + 3")
	require.Empty(t, res.Err)
	assert.Equal(t, 5, res.Result)
}

func TestInterpreter_NamespacePersistsAcrossCalls(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "x := 2\nx + 3")
	require.Empty(t, res.Err)

	res = k.Execute(context.Background(), "x")
	require.Empty(t, res.Err)
	assert.Equal(t, 2, res.Result)
}

func TestInterpreter_StatementOnlySourceHasNilResult(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "y := 41")
	require.Empty(t, res.Err)
	assert.Nil(t, res.Result)

	res = k.Execute(context.Background(), "y + 1")
	require.Empty(t, res.Err)
	assert.Equal(t, 42, res.Result)
}

func TestInterpreter_CapturesStdout(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), `import "fmt"`+"\n"+`fmt.Println("hello")`)
	require.Empty(t, res.Err)
	assert.Contains(t, res.Stdout, "hello")

	// The buffer is per call; a following run starts clean.
	res = k.Execute(context.Background(), "1 + 1")
	assert.Empty(t, res.Stdout)
}

func TestInterpreter_EmptySourceIsNoOp(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "   \n\t ")
	assert.Empty(t, res.Err)
	assert.Empty(t, res.Stdout)
	assert.Nil(t, res.Result)
}

func TestInterpreter_DivisionByZeroBecomesErrorData(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "1/0")
	require.NotEmpty(t, res.Err)
	assert.Contains(t, strings.ToLower(res.Err), "divi")
	assert.Nil(t, res.Result)
}

func TestInterpreter_RuntimePanicBecomesErrorData(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "zero := 0\n1 / zero")
	require.NotEmpty(t, res.Err)
	assert.Contains(t, strings.ToLower(res.Err), "divi")
}

func TestInterpreter_PartialSideEffectsPersistOnFailure(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "a := 7\nundefinedSymbol")
	require.NotEmpty(t, res.Err)

	// The preceding statement ran before the failure; no rollback.
	res = k.Execute(context.Background(), "a")
	require.Empty(t, res.Err)
	assert.Equal(t, 7, res.Result)
}

func TestInterpreter_ResetClearsNamespace(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), "x := 1")
	require.Empty(t, res.Err)

	require.NoError(t, k.Reset())

	res = k.Execute(context.Background(), "x")
	assert.NotEmpty(t, res.Err, "x should be undefined after reset")
}

func TestInterpreter_UserVariablesSnapshot(t *testing.T) {
	k := New()
	res := k.Execute(context.Background(), `name := "gopher"`)
	require.Empty(t, res.Err)
	res = k.Execute(context.Background(), "count := 3")
	require.Empty(t, res.Err)

	vars := k.UserVariables()
	assert.Equal(t, "gopher", vars["name"])
	assert.Equal(t, "3", vars["count"])
	for name := range vars {
		assert.False(t, strings.HasPrefix(name, reservedPrefix), "reserved symbol leaked: %s", name)
	}
}

func TestInterpreter_UserVariablesEmptyAfterReset(t *testing.T) {
	k := New()
	_ = k.Execute(context.Background(), "x := 1")
	require.NoError(t, k.Reset())
	assert.Empty(t, k.UserVariables())
}

func TestIsExpression(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"x + 3", true},
		{"x", true},
		{`fmt.Sprintf("%d", 1)`, true},
		{"x := 2", false},
		{"if true {", false},
		{"}", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isExpression(tt.line), "line %q", tt.line)
	}
}
