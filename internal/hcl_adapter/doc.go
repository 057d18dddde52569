// Package hcl_adapter provides the HCL implementation of config.Loader. It
// parses calculator configuration files such as:
//
//	display {
//	  angle_unit = "degree"
//	  glyph      = "unicode"
//	  precision  = 3
//	}
//
//	prompt = "pycalc> "
//
//	module "std_math" {
//	  config = { degree_mode = true }
//	}
//
//	module "phasor" {
//	  namespace = "ph"
//	}
package hcl_adapter
