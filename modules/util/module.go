// Package util provides working directory helpers.
package util

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/vk/phasorcalc/internal/registry"
)

// Module implements registry.Module for the util functions.
type Module struct{}

// Name implements registry.Module.
func (m *Module) Name() string { return "util" }

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunction("cwd", function.New(&function.Spec{
		Description: "Current working directory.",
		Type:        function.StaticReturnType(cty.String),
		Impl: func([]cty.Value, cty.Type) (cty.Value, error) {
			dir, err := os.Getwd()
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(dir), nil
		},
	}))
	r.RegisterFunction("ls", function.New(&function.Spec{
		Description: "Lists the current directory.",
		Type:        function.StaticReturnType(cty.String),
		Impl: func([]cty.Value, cty.Type) (cty.Value, error) {
			listing, err := listDir()
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(listing), nil
		},
	}))
	r.RegisterFunction("cd", function.New(&function.Spec{
		Description: "Changes the current directory and returns the new one.",
		Params:      []function.Parameter{{Name: "path", Type: cty.String}},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if err := os.Chdir(args[0].AsString()); err != nil {
				return cty.NilVal, fmt.Errorf("cd: %w", err)
			}
			dir, err := os.Getwd()
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(dir), nil
		},
	}))
}

func listDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("ls: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return fmt.Sprintf("Current directory: %s\nDirectory contents:\n    %s", dir, strings.Join(names, "\n    ")), nil
}
