// Package filesrv exposes a client for a remote HTTP file server offering
// list, create, read, write and delete over a small JSON API:
//
//	GET    /ping           liveness, unauthenticated
//	POST   /files          list a directory, or create a file/directory
//	DELETE /files          delete a path
//	POST   /files/content  read a file
//	PUT    /files/content  write a file
//
// Every request except /ping carries a "password" field holding the base64
// encoding of the shared secret. Base64 is obfuscation only; it does not
// protect the secret in transit and should not be relied on for security.
//
// Failures surface as *HTTPError (non-2xx status with the server's "error"
// message), *TransportError (no status available) or ErrMalformedResponse.
// The client never retries.
package filesrv
