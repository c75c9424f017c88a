// SPDX-License-Identifier: MIT

// Package config is the YAML configuration of the kgtriples CLI.
//
// Every component option has an explicit default in DefaultConfig. Load
// overlays a file on top of the defaults, then KGTRIPLES_* environment
// variables on top of the file. Validate resolves every registry name
// (split method, sampler, anchor selection, sLCWA kind) so unknown names
// fail before any work starts.
//
// The builder methods (SplitOptions, InstanceOptions, Selection, ...)
// translate the structs into the functional options of the library
// packages.
package config
