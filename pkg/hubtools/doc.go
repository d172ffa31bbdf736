// Package hubtools defines the catalog of home-automation tools and the rules
// that turn a tool call into a single hub REST request.
//
// Each tool decodes its JSON arguments into its own record type, checks that
// required fields are present, and maps the record to a [hub.Request]. The
// handler sends that request through a [hub.Doer] and formats the hub's JSON
// response as "<Label>: <json>".
//
// Adding a tool means adding one entry to the catalog table; there is no
// shared switch over tool names.
package hubtools
