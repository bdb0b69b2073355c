// Package api is the HTTP client for the SEEDx REST collaborator: the
// project list, the treasury balance, and the treasury allocation endpoint.
package api
