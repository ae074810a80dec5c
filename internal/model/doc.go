// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the language-agnostic representation of everything the
// generator consumes and derives: type declarations, goal descriptions, their
// parameters and projections, and the step chain built from them.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - TypeName: The identity of a type, including nesting and generic arguments.
//     Nested identities are how step interfaces are scoped under a goal's contract.
//
//   - TypeDecl: The declared shape of a user type (methods, fields, constructor,
//     visibility). Projection and bean discovery read these declarations.
//
//   - GoalDescription: A validated generation target. It is a closed set of three
//     variants (SimpleRegularGoal, ProjectedRegularGoal, BeanGoal) that callers
//     dispatch on with a type switch.
//
//   - Step: One link of the fluent chain. Each step knows its own type and the
//     type of the step that follows it.
//
// Values in this package are treated as immutable once constructed. Stages that
// derive new data return new values instead of mutating their input.
package model
