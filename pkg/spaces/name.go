package spaces

import "fmt"

// VarName identifies a variable in a space. User variables carry the
// caller's string name; temporaries allocated by the engine carry an
// integer identifier and are omitted from solutions. The two-case sum type
// keeps the distinction in the type system instead of in string tests.
type VarName interface {
	fmt.Stringer
	isVarName()
}

// UserName is a caller-supplied variable name.
type UserName string

func (UserName) isVarName() {}

// String returns the name itself.
func (n UserName) String() string { return string(n) }

// TempName is an engine-generated identifier for a temporary variable.
type TempName int

func (TempName) isVarName() {}

// String renders the temporary as _tN.
func (n TempName) String() string { return fmt.Sprintf("_t%d", int(n)) }

// Name wraps a string as a user variable name.
func Name(s string) VarName { return UserName(s) }

// Names wraps a list of strings as user variable names.
func Names(ss ...string) []VarName {
	out := make([]VarName, len(ss))
	for i, s := range ss {
		out[i] = UserName(s)
	}
	return out
}
