package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is the gohcl decoding target for a whole configuration file.
type fileRoot struct {
	Display *DisplayBlock  `hcl:"display,block"`
	Prompt  *string        `hcl:"prompt,optional"`
	Modules []*ModuleBlock `hcl:"module,block"`
}

// DisplayBlock is the HCL schema of the `display` block.
type DisplayBlock struct {
	AngleUnit *string `hcl:"angle_unit,optional"`
	Glyph     *string `hcl:"glyph,optional"`
	Precision *int    `hcl:"precision,optional"`
}

// ModuleBlock is the HCL schema of a `module "<name>"` block.
type ModuleBlock struct {
	Name      string         `hcl:"name,label"`
	Namespace *string        `hcl:"namespace,optional"`
	Config    hcl.Expression `hcl:"config,optional"`
}
