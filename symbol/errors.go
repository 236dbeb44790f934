package symbol

import "errors"

var (
	// ErrEmptySymbolName indicates an empty name was passed to Intern.
	ErrEmptySymbolName = errors.New("symbol: name is empty")

	// ErrArityMismatch indicates an OperatorDeclaration's ArgSorts count
	// disagrees with the Symbol's fixed arity.
	ErrArityMismatch = errors.New("symbol: declaration arity does not match symbol arity")

	// ErrNoDeclarations indicates Compile was called on a Symbol with no
	// operator declarations.
	ErrNoDeclarations = errors.New("symbol: no operator declarations to compile")

	// ErrAlreadyCompiled indicates AddDeclaration was called after Compile.
	ErrAlreadyCompiled = errors.New("symbol: sort table already compiled")

	// ErrNotCompiled indicates ComputeBaseSort was called before Compile.
	ErrNotCompiled = errors.New("symbol: sort table not yet compiled")

	// ErrArgCountMismatch indicates ComputeBaseSort received a different
	// number of argument sorts than the symbol's arity.
	ErrArgCountMismatch = errors.New("symbol: wrong number of argument sorts")
)
