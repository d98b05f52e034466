package config

import "time"

// LoweredFileExt is the canonical extension for lowered program files.
const LoweredFileExt = ".lom"

// LoweredFileExtensions are all recognized lowered-program file extensions.
var LoweredFileExtensions = []string{".lom", ".lom.yaml", ".lom.yml"}

// Built-in function names
const (
	PureFuncName     = "pure"
	FailFuncName     = "fail"
	BindFuncName     = "bind"
	AttemptFuncName  = "attempt"
	LoadFuncName     = "load"
	MapFuncName      = "map"
	ChainFuncName    = "chain"
	PrintFuncName    = "print"
	PrintlnFuncName  = "println"
	AssertEqFuncName = "assertEq"
	FoldGenFuncName  = "foldGen"
)

// Built-in constructor names
const (
	SomeCtorName   = "Some"
	NoneCtorName   = "None"
	OkCtorName     = "Ok"
	ErrCtorName    = "Err"
	ClosedCtorName = "Closed"
)

// MainBindingName is the binding resolved by the run entry point.
const MainBindingName = "main"

// TestBindingPrefix selects bindings for the default test-suite run.
const TestBindingPrefix = "test"

// CancelPollInterval bounds how long any blocking primitive may wait
// between cooperative cancellation checks. Every blocking path in the
// runtime (channel receive, par/race joins) must re-check its cancel
// token at least this often.
const CancelPollInterval = 25 * time.Millisecond

// MaxEvalDepth bounds evaluator recursion depth.
const MaxEvalDepth = 10000
