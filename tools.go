//go:build tools

// Package tools pins the versions of the development binaries in go.mod.
//
//	swag      regenerates the OpenAPI docs from the handler annotations
//	mockery   regenerates interface mocks
//	goose     applies internal/database/migrations by hand
//	benchstat compares runs of the internal/industry benchmarks
//	golangci-lint lints the tree
package tools

//go:generate go run github.com/swaggo/swag/cmd/swag init -g cmd/app/main.go -o docs --parseInternal

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
