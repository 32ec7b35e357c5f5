package input

import (
	"bookshelf/internal/controller"
	"bookshelf/internal/ui/logic"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Controller *controller.Controller
	Navigator  *logic.GridNavigator
}

// CurrentIndex returns the index of the cell under the cursor
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.Selected()
}

// TotalItems returns the number of displayed categories
func (c *ModelContext) TotalItems() int {
	return c.Controller.ItemCount()
}

func (c *ModelContext) Columns() int {
	return c.Navigator.Columns()
}

func (c *ModelContext) Searching() bool {
	return c.Controller.Searching()
}

func (c *ModelContext) SearchQuery() string {
	return c.Controller.Query()
}
