package api

import "fmt"

// EncodeError reports a request body that could not be serialized. It is
// produced before anything is sent.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode request: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// TransportError reports a failure to complete the network exchange: no
// HTTP response was obtained.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// InvalidResponseError reports a status code outside the operation's
// accepted set. The body is not inspected further.
type InvalidResponseError struct {
	Status int
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response from server: status %d", e.Status)
}

// DecodeError reports a malformed payload on an otherwise accepted response.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// StorageError reports a credential or session persistence failure.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
