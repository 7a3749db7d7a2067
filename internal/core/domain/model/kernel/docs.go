// Package kernel holds value objects shared by every aggregate of the order
// lifecycle domain.
package kernel
