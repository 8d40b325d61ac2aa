// Package alphavantage mirrors a selected set of tools of the Alpha Vantage MCP server.
//
// The remote tools are published under local aliases with their own tags,
// the calls are forwarded to the remote server.
package alphavantage
