// Package domain contains core concepts of the chat system.
// Entities here are plain values with no runtime, network, or UI logic.
package domain

// User is an immutable profile created once at registration.
// There is no rename or delete operation.
type User struct {
	ID          string
	DisplayName string
}
