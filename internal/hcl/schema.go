package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is every top-level block a level file may hold.
type fileRoot struct {
	World     *worldBlock   `hcl:"world,block"`
	Platforms []*boxBlock   `hcl:"platform,block"`
	Lifts     []*liftBlock  `hcl:"lift,block"`
	Hazards   []*boxBlock   `hcl:"hazard,block"`
	Spawns    []*spawnBlock `hcl:"spawn,block"`
	Goal      *goalBlock    `hcl:"goal,block"`
}

type worldBlock struct {
	Name      *string        `hcl:"name,optional"`
	Gravity   hcl.Expression `hcl:"gravity,optional"`
	KillPlane *float64       `hcl:"kill_plane,optional"`
}

type boxBlock struct {
	Name   string         `hcl:"name,label"`
	Center hcl.Expression `hcl:"center"`
	Size   hcl.Expression `hcl:"size"`
}

type liftBlock struct {
	Name   string         `hcl:"name,label"`
	Size   hcl.Expression `hcl:"size"`
	From   hcl.Expression `hcl:"from"`
	To     hcl.Expression `hcl:"to"`
	Speed  float64        `hcl:"speed"`
	Dampen *float64       `hcl:"dampen,optional"`
}

type spawnBlock struct {
	Name     string         `hcl:"name,label"`
	Position hcl.Expression `hcl:"position"`
}

type goalBlock struct {
	Position hcl.Expression `hcl:"position"`
	Patrol   hcl.Expression `hcl:"patrol,optional"`
	Dwell    *float64       `hcl:"dwell,optional"`
}
