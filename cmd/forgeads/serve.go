package main

import (
	"fmt"

	forgeadsgin "github.com/forgeads/forgeads/gin"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := forgeadsgin.NewServer(deps.Creatives, deps.Products, deps.Logger)

	fmt.Fprintf(deps.Stderr, "Listening on %s\n", c.Addr)
	if err := srv.ListenAndServe(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}
