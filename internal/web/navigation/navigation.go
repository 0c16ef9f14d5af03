// Package navigation builds the header menu and breadcrumbs of a page.
package navigation

import "strings"

// Link is a breadcrumb or menu entry.
type Link struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []Link
}

// Sections are the top level menu entries in display order.
var Sections = []Link{ //nolint:gochecknoglobals
	{Title: "Stock", URL: "/stock/"},
	{Title: "Chat", URL: "/chat/"},
	{Title: "Setup", URL: "/setup"},
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]Link, 0, 2), //nolint:mnd
	}
}

// AddBreadcrumb appends a breadcrumb and returns the context for chaining.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{Title: title, URL: url, Active: active})
	return c
}

// Menu returns Sections with the entry of the active section marked.
// Sections are matched by lowercase title.
func (c *Context) Menu() []Link {
	menu := make([]Link, len(Sections))
	for i, s := range Sections {
		s.Active = c.IsSectionActive(strings.ToLower(s.Title))
		menu[i] = s
	}

	return menu
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
