// Package api implements the HTTP handlers for the contact management API:
// user registration and sessions, contact CRUD and search, and addresses
// nested under contacts.
package api
