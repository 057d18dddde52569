// Package config defines the format-agnostic model of a calculator
// configuration file: display settings, prompt, and the ordered list of
// modules to merge into the evaluation namespace.
//
// Concrete file formats live in separate packages (hcl_adapter,
// yaml_adapter) and implement the Loader interface declared here.
package config
