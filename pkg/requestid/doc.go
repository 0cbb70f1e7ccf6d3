// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reads X-Request-ID from the client, keeps it when it is a short
// token of letters, digits, '-' or '_', and otherwise generates a UUID. The id
// is stored in the request context and echoed back in the response header.
// LoggerExtractor makes the logger attach it to every record written with that
// context.
package requestid
