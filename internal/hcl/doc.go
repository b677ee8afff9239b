// Package hcl provides the HCL implementation of config.Loader. It parses
// level files, evaluates their expressions against a small context (the
// `agent` object and a few numeric functions) and translates the blocks into
// the format-agnostic config.Level.
//
// A level file looks like:
//
//	world {
//	  gravity    = [0, 98]
//	  kill_plane = 700
//	}
//
//	platform "ground" {
//	  center = [400, 700]
//	  size   = [1700, 80]
//	}
//
//	lift "west" {
//	  size   = [60, 10]
//	  from   = [180, -60]
//	  to     = [180, -300]
//	  speed  = 30
//	  dampen = 1
//	}
//
//	spawn "floor" {
//	  position = [60, 660 - agent.radius]
//	}
//
//	goal {
//	  position = [800, -800]
//	}
package hcl
