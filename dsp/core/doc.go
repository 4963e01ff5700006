// Package core holds small numeric and buffer helpers shared by the codec
// packages.
package core
