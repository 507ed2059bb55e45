// Package testsupport holds fixtures and golden helpers shared by the
// package tests: flow loading, a canned flow server and golden files.
package testsupport
