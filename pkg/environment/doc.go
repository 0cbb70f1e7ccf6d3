// Package environment names the deployment environments the service knows
// about and parses the APP_ENV value into one of them.
package environment
