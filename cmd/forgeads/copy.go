package main

import "github.com/forgeads/forgeads"

// Run executes the copy command.
func (c *CopyCmd) Run(deps *Dependencies) error {
	ad, err := deps.Creatives.GenerateCopy(deps.Ctx, &forgeads.CopyRequest{
		Niche:     c.Niche,
		Audience:  c.Audience,
		Objective: forgeads.Objective(c.Objective),
		Awareness: forgeads.Awareness(c.Awareness),
		Tone:      forgeads.Tone(c.Tone),
	})
	if err != nil {
		return fail(deps, err)
	}

	return encode(deps.Stdout, deps.Format, ad)
}
