// Package failure defines the structured errors reported by goal validation and
// step ordering. Every failure carries a fixed Code and a reference to the
// declaration it is attached to, so a caller can place its own diagnostic.
package failure

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. A Code is itself an error so it can be
// used as the target of errors.Is.
type Code string

func (c Code) Error() string { return string(c) }

const (
	NoProjection             Code = "NO_PROJECTION"
	BadGenerics              Code = "BAD_GENERICS"
	GetterSetterTypeMismatch Code = "GETTER_SETTER_TYPE_MISMATCH"
	GetterException          Code = "GETTER_EXCEPTION"
	CouldNotFindSetter       Code = "COULD_NOT_FIND_SETTER"
	SetterException          Code = "SETTER_EXCEPTION"
	StepOnSetter             Code = "STEP_ON_SETTER"
	IgnoreOnSetter           Code = "IGNORE_ON_SETTER"
	IgnoreAndStep            Code = "IGNORE_AND_STEP"
	BeanNoAccessorPairs      Code = "BEAN_NO_ACCESSOR_PAIRS"
	BeanNoDefaultConstructor Code = "BEAN_NO_DEFAULT_CONSTRUCTOR"
	BeanPrivateClass         Code = "BEAN_PRIVATE_CLASS"
	BeanAbstractClass        Code = "BEAN_ABSTRACT_CLASS"
	StepOutOfBounds          Code = "STEP_OUT_OF_BOUNDS"
	StepDuplicate            Code = "STEP_DUPLICATE"
	AbstractConstructor      Code = "ABSTRACT_CONSTRUCTOR"
	PrivateMethod            Code = "PRIVATE_METHOD"
	PrivateType              Code = "PRIVATE_TYPE"
	NotEnoughParameters      Code = "NOT_ENOUGH_PARAMETERS"
	DuplicateParameter       Code = "DUPLICATE_PARAMETER"
	UnknownType              Code = "UNKNOWN_TYPE"

	// Goal name conflicts. E is a goal using its default name, N an
	// explicitly named goal; C a constructor or bean goal, M a method goal.
	GoalNameEECC Code = "GOALNAME_EECC"
	GoalNameEEMC Code = "GOALNAME_EEMC"
	GoalNameEEMM Code = "GOALNAME_EEMM"
	GoalNameNECC Code = "GOALNAME_NECC"
	GoalNameNEMC Code = "GOALNAME_NEMC"
	GoalNameNEMM Code = "GOALNAME_NEMM"
	GoalNameNN   Code = "GOALNAME_NN"
)

// Error is a failure attached to a declaration.
type Error struct {
	Code Code
	// Element names the offending declaration, e.g. "Message.create(kevin)".
	Element string
	Detail  string
}

// New returns a failure for element. Detail is formatted from format and args
// when format is not empty.
func New(code Code, element string, format string, args ...any) *Error {
	e := &Error{Code: code, Element: element}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Element != "" {
		msg += " at " + e.Element
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches a Code, or another *Error with the same Code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Code:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code, true
	}
	return "", false
}
