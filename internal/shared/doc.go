// Package shared holds code used across packages that belongs to no single
// layer. Today that is only the testutil subpackage: slog capture handlers
// and xlsx workbook fixtures for registry tests.
//
// Nothing here may import business packages, and testutil must only be
// imported from _test.go files.
package shared
