// Package registry merges calculator modules into one evaluation namespace.
//
// Each module registers functions and variables into its own scope. When the
// configuration loads the module without a namespace its names are merged
// straight into the root namespace (later modules override earlier ones);
// with a namespace the functions become `ns::name` calls and the variables an
// `ns` object. Names starting with an underscore are private to the module
// and never exported.
//
// Loading is forgiving: a module that is unknown, has an invalid config or
// fails its Init callback is recorded in the Report and skipped, so one
// broken extension never prevents the calculator from starting.
package registry
