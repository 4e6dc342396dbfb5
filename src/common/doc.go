// Package common contains helpers shared by the other packages of the
// repository, mainly for tests.
package common
