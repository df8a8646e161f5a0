// Package gmail_tools provides MCP tools for Gmail messages, threads and
// labels.
//
// Listings fetch the metadata of every listed message or thread
// concurrently and return them in the order Gmail listed them. Full fetches
// include the extracted plain-text body and the attachment list.
package gmail_tools
