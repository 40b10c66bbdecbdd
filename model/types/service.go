package types

// Service is a named bundle of remotely callable tool methods.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
