// Package treecrumb expands collapsible tree pages (documentation sitemaps,
// nested navigation lists) in a browser, captures the rendered DOM, and
// extracts every link together with the breadcrumb path of list-item labels
// above it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, fs/).
package treecrumb
