package types

import (
	"context"
	"reflect"
	"strings"
)

// Signatures is a lookup-able collection of method signatures.
type Signatures []Signature

// Lookup returns the signature with the given name, matched
// case-insensitively, or nil.
func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		sig := &s[i]
		if strings.EqualFold(sig.Name, name) {
			return sig
		}
	}
	return nil
}

// Signature describes one callable method: its name and the input/output
// struct types the dispatcher instantiates around each call.
type Signature struct {
	Name        string
	Description string
	Input       reflect.Type
	Output      reflect.Type
}

// Executable is the uniform calling convention of every tool method. Input
// and output are pointers to the signature's declared struct types.
type Executable func(ctx context.Context, input, output interface{}) error
