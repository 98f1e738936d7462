package main

import (
	"fmt"

	"github.com/forgeads/forgeads"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := forgeads.ProductFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	products, err := deps.Products.FindProducts(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(products) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved analyses. Use 'forgeads analyze' to create one.")
		return nil
	}

	for _, p := range products {
		source := p.SourceURL
		if source == "" {
			source = string(p.SourceType)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", p.ID, p.CreatedAt.Format("2006-01-02 15:04"), p.ProductName, source)
	}

	return nil
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	product, err := deps.Products.FindProductByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	return encode(deps.Stdout, deps.Format, product)
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return forgeads.Errorf(forgeads.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Products.DeleteProduct(deps.Ctx, c.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted analysis %s\n", c.ID)
	return nil
}
