// Package service orchestrates the application's business operations on top
// of the store layer: user account lifecycle, contact CRUD and search, and
// address management behind contact ownership checks.
package service
