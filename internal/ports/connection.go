package ports

// Connection is the byte-stream abstraction to the external observer.
// The concrete transport protocol is a collaborator's concern, not the
// service's; the service only needs to dial it and know whether the
// dial succeeded, and to drain an encoded buffer onto it.
type Connection interface {
	Connect() error
	Close() error
	Write(data []byte) error
}
