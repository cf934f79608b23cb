// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	return runWith(t, src, nil)
}

func runWith(t *testing.T, src string, inputs Inputs) value.Value {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	vm := NewVM(inputs)
	out, err := vm.Run(prog)
	require.NoError(t, err)
	return out
}

// fakeInputs binds a fixed input list for $n resolution in tests.
type fakeInputs struct {
	vals []value.Value
}

func (f fakeInputs) InputValue(n int) (value.Value, bool) {
	if n < 1 || n > len(f.vals) {
		return value.Value{}, false
	}
	return f.vals[n-1], true
}
func (f fakeInputs) InputName(n int) (string, bool)            { return "", false }
func (f fakeInputs) InputTimestamp(n int) (value.Value, bool)  { return value.Value{}, false }
func (f fakeInputs) InputCount() int                           { return len(f.vals) }
func (f fakeInputs) Param(n int) (value.Value, bool)           { return value.Value{}, false }

// ─── literals and typed arithmetic ────────────────────────────────────────

func TestArithmeticStack(t *testing.T) {
	out := run(t, "2 3 l+")
	l, ok := out.Long()
	require.True(t, ok)
	assert.Equal(t, int64(5), l)
}

func TestTruncatedVsEuclideanDivision(t *testing.T) {
	out := run(t, "-7 2 l%")
	l, _ := out.Long()
	assert.Equal(t, int64(-1), l, "l%% truncates toward zero")

	out = run(t, "-7 2 mod")
	l, _ = out.Long()
	assert.Equal(t, int64(1), l, "mod is Euclidean, always non-negative")
}

func TestDoubleEpsilonEquality(t *testing.T) {
	out := run(t, "1.0 1.0000000001 eq~")
	b, ok := out.Boolean()
	require.True(t, ok)
	assert.True(t, b)
}

func TestStackCombinators(t *testing.T) {
	out := run(t, "1 2 swap l-")
	l, _ := out.Long()
	assert.Equal(t, int64(1), l)
}

// ─── generic arithmetic ───────────────────────────────────────────────────

func TestGenericAddOnInputsYieldsLong(t *testing.T) {
	out := runWith(t, "$1 $2 +", fakeInputs{vals: []value.Value{value.Long(3), value.Long(4)}})
	l, ok := out.Long()
	require.True(t, ok)
	assert.Equal(t, int64(7), l)
}

func TestGenericMixedLongDoublePromotes(t *testing.T) {
	out := run(t, "1 2.5 +")
	f, ok := out.Double()
	require.True(t, ok)
	assert.InDelta(t, 3.5, f, 1e-12)
}

func TestGenericIntegerDivisionTruncates(t *testing.T) {
	out := run(t, "-7 2 /")
	l, ok := out.Long()
	require.True(t, ok)
	assert.Equal(t, int64(-3), l)
}

func TestBigDecDivisionCarriesScale(t *testing.T) {
	out := run(t, "'2.0' bigdec '3' bigdec /")
	d, ok := out.BigDecimal()
	require.True(t, ok)
	assert.Equal(t, int32(2), d.Scale)
	assert.Equal(t, "0.67", d.String())
}

func TestColonIsDupWithoutSemicolon(t *testing.T) {
	out := run(t, "3 : *")
	l, _ := out.Long()
	assert.Equal(t, int64(9), l)
}

func TestDecrementIncrement(t *testing.T) {
	out := run(t, "5 -- ++ ++")
	l, _ := out.Long()
	assert.Equal(t, int64(6), l)
}

func TestZeroPredicate(t *testing.T) {
	b, _ := run(t, "0 0?").Boolean()
	assert.True(t, b)
	b, _ = run(t, "0.5 0?").Boolean()
	assert.False(t, b)
}

// ─── control flow ─────────────────────────────────────────────────────────

func TestIfElseBranches(t *testing.T) {
	out := run(t, "true if 1 else 2")
	l, _ := out.Long()
	assert.Equal(t, int64(1), l)

	out = run(t, "false if 1 else 2")
	l, _ = out.Long()
	assert.Equal(t, int64(2), l)
}

func TestIfBlockBranch(t *testing.T) {
	out := run(t, "false if 1 else { 2 3 l+ }")
	l, _ := out.Long()
	assert.Equal(t, int64(5), l)
}

func TestUnlessInvertsCondition(t *testing.T) {
	out := run(t, "false unless 1 else 2")
	l, _ := out.Long()
	assert.Equal(t, int64(1), l)
}

func TestWhileLoopAccumulates(t *testing.T) {
	out := run(t, "0 while { dup 5 l< } { 1 l+ }")
	l, _ := out.Long()
	assert.Equal(t, int64(5), l)
}

func TestDoLoopRunsBodyAtLeastOnce(t *testing.T) {
	out := run(t, "0 do { 1 l+ } { dup 3 l< }")
	l, _ := out.Long()
	assert.Equal(t, int64(3), l)
}

func TestBreakExitsWhileLoop(t *testing.T) {
	out := run(t, "0 while { true } { 1 l+ dup 2 l>= if break }")
	l, _ := out.Long()
	assert.Equal(t, int64(2), l)
}

func TestTryCatchRestoresStackOnFailure(t *testing.T) {
	out := run(t, "1 2 try { fail } { drop 99 }")
	l, _ := out.Long()
	assert.Equal(t, int64(99), l)
}

// TestTryPreservesEntryStack checks the snapshot contract: the stack at
// try exit is the entry stack extended by exactly what the executed
// branch produced — the body's partial pushes before the failure are
// rolled back.
func TestTryPreservesEntryStack(t *testing.T) {
	prog, err := Parse("10 try { 20 30 fail } { 7 }")
	require.NoError(t, err)
	vm := NewVM(nil)
	require.NoError(t, vm.Exec(prog))
	require.Equal(t, 2, vm.Stack.Len())
	top, err := vm.Stack.Pop()
	require.NoError(t, err)
	l, _ := top.Long()
	assert.Equal(t, int64(7), l)
	bottom, err := vm.Stack.Pop()
	require.NoError(t, err)
	l, _ = bottom.Long()
	assert.Equal(t, int64(10), l)
}

func TestAssertFailsEvaluation(t *testing.T) {
	_, err := NewVM(nil).Run(parseMust(t, "false assert"))
	require.Error(t, err)
	ef, ok := err.(*EvalFailure)
	require.True(t, ok)
	assert.Equal(t, AssertionFailed, ef.Code)
}

func TestUnknownOperationFails(t *testing.T) {
	_, err := NewVM(nil).Run(parseMust(t, "bogus_op_name"))
	require.Error(t, err)
	ef, ok := err.(*EvalFailure)
	require.True(t, ok)
	assert.Equal(t, UnknownOperation, ef.Code)
}

// ─── registers, words, macros ─────────────────────────────────────────────

func TestWholeProgramRegister(t *testing.T) {
	out := run(t, "42 $x= $x")
	l, _ := out.Long()
	assert.Equal(t, int64(42), l)
}

func TestCompoundScopeNesting(t *testing.T) {
	out := run(t, "#= 1 #a= #= 2 #a= #a #")
	l, _ := out.Long()
	assert.Equal(t, int64(2), l, "innermost #a shadows the outer scope")
}

func TestKeepStoreDoesNotPop(t *testing.T) {
	// `:#1=` stores without consuming, so the following popping store
	// `#2=` sees the same value and both registers read back 7.
	out := run(t, "7 :#1= #2= #1 #2 l+")
	l, _ := out.Long()
	assert.Equal(t, int64(14), l)
}

func TestInputCountVariable(t *testing.T) {
	out := runWith(t, "$#", fakeInputs{vals: []value.Value{value.Long(1), value.Long(2), value.Long(3)}})
	l, _ := out.Long()
	assert.Equal(t, int64(3), l)
}

func TestUserDefinedWord(t *testing.T) {
	out := run(t, ": double dup l+ ; 21 double")
	l, _ := out.Long()
	assert.Equal(t, int64(42), l)
}

func TestMacroExpansion(t *testing.T) {
	out := run(t, "macro twice(x) { x x l+ } twice(21)")
	l, _ := out.Long()
	assert.Equal(t, int64(42), l)
}

// ─── marked sub-evaluation and containers ─────────────────────────────────

func TestMarkedDepthAndReduce(t *testing.T) {
	out := run(t, "[ 1 2 3 4 'l+' reduce ]")
	l, _ := out.Long()
	assert.Equal(t, int64(10), l)
}

func TestTupleRoundTrip(t *testing.T) {
	out := run(t, "1 2 3 3 tuple tuple_len")
	l, _ := out.Long()
	assert.Equal(t, int64(3), l)
}

func TestTupleAtIndex(t *testing.T) {
	out := run(t, "10 20 30 3 tuple 1 at")
	l, _ := out.Long()
	assert.Equal(t, int64(20), l)
}

func TestDictSetGet(t *testing.T) {
	out := run(t, "dict_new 'k' 7 dict_set 'k' dict_get")
	l, _ := out.Long()
	assert.Equal(t, int64(7), l)
}

func TestComplexCartesianAddition(t *testing.T) {
	out := run(t, "1.0 2.0 cplx 3.0 4.0 cplx c+")
	c, ok := out.Complex()
	require.True(t, ok)
	re, im := c.ToCartesian()
	assert.InDelta(t, 4.0, re, 1e-9)
	assert.InDelta(t, 6.0, im, 1e-9)
}

func TestDateTimeJoinAndSplit(t *testing.T) {
	out := run(t, "2024 1 15 10 30 0 join year")
	l, _ := out.Long()
	assert.Equal(t, int64(2024), l)
}

func TestBigIntArithmetic(t *testing.T) {
	out := run(t, "3 bi_of 4 bi_of bi*")
	bi, ok := out.BigInteger()
	require.True(t, ok)
	assert.Equal(t, int64(12), bi.Int64())
}

func parseMust(t *testing.T, src string) Program {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	return prog
}
