package diagnostics

import "strings"

type ErrorCode string

// Lexer errors
const (
	ErrL001 ErrorCode = "L001" // unterminated string literal
	ErrL002 ErrorCode = "L002" // unexpected character
)

// Parser errors
const (
	ErrP001 ErrorCode = "P001" // expected keyword
	ErrP002 ErrorCode = "P002" // expected token
	ErrP003 ErrorCode = "P003" // expected expression
	ErrP004 ErrorCode = "P004" // expected identifier
	ErrP005 ErrorCode = "P005" // list separator
	ErrP006 ErrorCode = "P006" // missing period
	ErrP007 ErrorCode = "P007" // ordinal suffix does not agree
)

// Runtime errors
const (
	ErrR001 ErrorCode = "R001" // undeclared variable
	ErrR002 ErrorCode = "R002" // operator on unset operand
	ErrR003 ErrorCode = "R003" // operator on wrong kind
	ErrR004 ErrorCode = "R004" // assignment to undefined identifier
	ErrR005 ErrorCode = "R005" // assignment to non-instance
	ErrR006 ErrorCode = "R006" // call of non-function
	ErrR007 ErrorCode = "R007" // instantiation of non-class
	ErrR008 ErrorCode = "R008" // property access on non-instance
	ErrR009 ErrorCode = "R009" // iteration over non-instance
	ErrR010 ErrorCode = "R010" // iterator protocol missing
	ErrR011 ErrorCode = "R011" // return outside function
	ErrR012 ErrorCode = "R012" // this before super
	ErrR013 ErrorCode = "R013" // super not called
	ErrR014 ErrorCode = "R014" // module name not a string
	ErrR015 ErrorCode = "R015" // export outside module
	ErrR016 ErrorCode = "R016" // export name not a string
	ErrR017 ErrorCode = "R017" // module could not be loaded
	ErrR018 ErrorCode = "R018" // parent is not a class
	ErrR019 ErrorCode = "R019" // invalid property key
	ErrR020 ErrorCode = "R020" // recursion limit
	ErrR021 ErrorCode = "R021" // native function failed
)

// Kind names the stage an error code belongs to.
func (c ErrorCode) Kind() string {
	switch {
	case strings.HasPrefix(string(c), "L"):
		return "LexError"
	case strings.HasPrefix(string(c), "P"):
		return "ParseError"
	case strings.HasPrefix(string(c), "R"):
		return "RuntimeError"
	}
	return "Error"
}
