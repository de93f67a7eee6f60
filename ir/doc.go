// Package ir defines the neutral intermediate representation produced by
// the spirvfront decoder.
//
// The IR is a pure data model: types, constants, global variables,
// functions, and entry points, each held in an append-only Module slice
// and referenced by opaque handles (slice indices). Nothing in this
// package parses, validates semantics beyond basic bounds checks, or
// mutates a value once appended — that is the decoder's job.
//
// # References
//
// This IR's shape mirrors the data model naga (Rust) used for its SPIR-V
// front-end: https://github.com/gfx-rs/naga, and the SPIR-V
// specification: https://www.khronos.org/registry/SPIR-V/
package ir
