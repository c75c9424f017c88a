package triples_test

import "github.com/katalvlaran/kgtriples/splitting"

func splittingCleanup(seed uint64) []splitting.Option {
	return []splitting.Option{splitting.WithSeed(seed), splitting.WithMethod(splitting.MethodCleanup)}
}
