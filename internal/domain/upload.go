package domain

import "io"

// Upload is an incoming file from a GraphQL multipart request.
type Upload struct {
	Filename string
	MimeType string
	Content  io.Reader
}
