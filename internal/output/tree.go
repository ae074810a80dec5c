package output

import "github.com/specialistvlad/stepbuilder/internal/model"

// Stmt is one of Declare, Assign, NullCheck, ForEachAdd, Return or ExprStmt.
type Stmt interface {
	isStmt()
}

// Declare introduces a local variable.
type Declare struct {
	Name  string
	Type  model.TypeName
	Value Expr
}

// Assign stores Value into Target.
type Assign struct {
	Target Expr
	Value  Expr
}

// NullCheck fails with a null-argument error naming Name when Value is nil.
type NullCheck struct {
	Value Expr
	Name  string
}

// ForEachAdd adds every element of Source to the collection Target.
type ForEachAdd struct {
	Source Expr
	// SourceType is the type of Source. Live is set when Source is read
	// through a getter that hands out the collection itself.
	SourceType model.TypeName
	Live       bool
	// Target is always a getter returning the live collection.
	Target     Expr
	TargetType model.TypeName
	// Var names the element variable.
	Var string
}

// Return ends the method, with a value unless Value is nil.
type Return struct {
	Value Expr
}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	X Expr
}

func (Declare) isStmt()    {}
func (Assign) isStmt()     {}
func (NullCheck) isStmt()  {}
func (ForEachAdd) isStmt() {}
func (Return) isStmt()     {}
func (ExprStmt) isStmt()   {}

// Expr is one of This, Ident, Select, Call, StaticCall, New, EmptyCollection
// or CacheGet.
type Expr interface {
	isExpr()
}

// This is the method receiver.
type This struct{}

// Ident refers to a parameter or local variable.
type Ident struct {
	Name string
}

// Select reads the field Name of X. User is set when the field belongs to a
// user type rather than to a generated one.
type Select struct {
	X    Expr
	Name string
	User bool
}

// Call invokes Method on X.
type Call struct {
	X      Expr
	Method string
	Args   []Expr
}

// StaticCall invokes a static method of Owner.
type StaticCall struct {
	Owner  model.TypeName
	Method string
	Args   []Expr
}

// FieldValue sets a field of a generated type at construction.
type FieldValue struct {
	Name  string
	Value Expr
}

// New constructs Type. Args are passed to a user constructor; Fields
// initialise a generated type.
type New struct {
	Type   model.TypeName
	Args   []Expr
	Fields []FieldValue
}

// EmptyCollection is a fresh empty value of a collection type.
type EmptyCollection struct {
	Type model.TypeName
}

// CacheGet reads a field of the shared cache of Generated.
type CacheGet struct {
	Generated model.TypeName
	Field     string
}

func (This) isExpr()            {}
func (Ident) isExpr()           {}
func (Select) isExpr()          {}
func (Call) isExpr()            {}
func (StaticCall) isExpr()      {}
func (New) isExpr()             {}
func (EmptyCollection) isExpr() {}
func (CacheGet) isExpr()        {}

// ThisField selects a field of the receiver.
func ThisField(name string) Select {
	return Select{X: This{}, Name: name}
}

// Var is shorthand for Ident{Name: name}.
func Var(name string) Ident {
	return Ident{Name: name}
}
